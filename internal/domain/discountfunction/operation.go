package discountfunction

import (
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/shopspring/decimal"
)

// Operation is one instruction returned to the checkout platform. Exactly one
// of its fields is set.
type Operation struct {
	ProductDiscountsAdd *ProductDiscountsAddOperation
	OrderDiscountsAdd   *OrderDiscountsAddOperation
}

// ProductDiscountsAddOperation applies line-level discounts
type ProductDiscountsAddOperation struct {
	Candidates        []ProductDiscountCandidate
	SelectionStrategy types.ProductDiscountSelectionStrategy
}

// ProductDiscountCandidate discounts every targeted line by the same value
type ProductDiscountCandidate struct {
	Message string
	Targets []CartLineTarget
	Value   CandidateValue
}

type CartLineTarget struct {
	ID string
}

// CandidateValue holds the discount amount. Only percentages are produced
// by this service.
type CandidateValue struct {
	Percentage *Percentage
}

type Percentage struct {
	Value decimal.Decimal
}

// OrderDiscountsAddOperation applies discounts to the order subtotal
type OrderDiscountsAddOperation struct {
	Candidates        []OrderDiscountCandidate
	SelectionStrategy types.OrderDiscountSelectionStrategy
}

type OrderDiscountCandidate struct {
	Message string
	Value   CandidateValue
	// ExcludedCartLineIDs lists lines left out of the order subtotal
	ExcludedCartLineIDs []string
}

// TargetIDs returns the cart line ids targeted by a candidate in order
func (c ProductDiscountCandidate) TargetIDs() []string {
	ids := make([]string, 0, len(c.Targets))
	for _, target := range c.Targets {
		ids = append(ids, target.ID)
	}
	return ids
}
