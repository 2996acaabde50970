package types

import (
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/samber/lo"
)

// DiscountClass gates which discount operations a function run may emit
type DiscountClass string

const (
	DiscountClassProduct  DiscountClass = "PRODUCT"
	DiscountClassOrder    DiscountClass = "ORDER"
	DiscountClassShipping DiscountClass = "SHIPPING"
)

func (c DiscountClass) String() string {
	return string(c)
}

func (c DiscountClass) Validate() error {
	allowed := []DiscountClass{
		DiscountClassProduct,
		DiscountClassOrder,
		DiscountClassShipping,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid discount class").
			WithHint("Discount class must be one of PRODUCT, ORDER or SHIPPING").
			WithReportableDetails(map[string]any{
				"discount_class":  c,
				"allowed_classes": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProductDiscountSelectionStrategy decides how many candidates of a
// product discount operation the checkout applies.
type ProductDiscountSelectionStrategy string

const (
	// ProductDiscountSelectionStrategyFirst applies only the first candidate
	ProductDiscountSelectionStrategyFirst ProductDiscountSelectionStrategy = "FIRST"
	// ProductDiscountSelectionStrategyAll applies every candidate
	ProductDiscountSelectionStrategyAll ProductDiscountSelectionStrategy = "ALL"
	// ProductDiscountSelectionStrategyMaximum applies the candidate with the largest saving
	ProductDiscountSelectionStrategyMaximum ProductDiscountSelectionStrategy = "MAXIMUM"
)

func (s ProductDiscountSelectionStrategy) String() string {
	return string(s)
}

func (s ProductDiscountSelectionStrategy) Validate() error {
	allowed := []ProductDiscountSelectionStrategy{
		ProductDiscountSelectionStrategyFirst,
		ProductDiscountSelectionStrategyAll,
		ProductDiscountSelectionStrategyMaximum,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid product discount selection strategy").
			WithHint("Invalid selection strategy").
			WithReportableDetails(map[string]any{
				"selection_strategy": s,
				"allowed_strategies": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OrderDiscountSelectionStrategy decides which candidate of an order
// discount operation the checkout applies.
type OrderDiscountSelectionStrategy string

const (
	OrderDiscountSelectionStrategyFirst   OrderDiscountSelectionStrategy = "FIRST"
	OrderDiscountSelectionStrategyMaximum OrderDiscountSelectionStrategy = "MAXIMUM"
)

func (s OrderDiscountSelectionStrategy) String() string {
	return string(s)
}

func (s OrderDiscountSelectionStrategy) Validate() error {
	allowed := []OrderDiscountSelectionStrategy{
		OrderDiscountSelectionStrategyFirst,
		OrderDiscountSelectionStrategyMaximum,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid order discount selection strategy").
			WithHint("Invalid selection strategy").
			WithReportableDetails(map[string]any{
				"selection_strategy": s,
				"allowed_strategies": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
