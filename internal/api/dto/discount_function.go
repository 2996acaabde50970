package dto

import (
	"github.com/hanahub/ab-discount-app/internal/domain/cart"
	"github.com/hanahub/ab-discount-app/internal/domain/discountfunction"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/hanahub/ab-discount-app/internal/validator"
	"github.com/samber/lo"
)

// RunRequest is the input the checkout platform hands to the discount
// function. Field names follow the platform's function API.
type RunRequest struct {
	Cart     CartInput     `json:"cart"`
	Discount DiscountInput `json:"discount"`
}

type CartInput struct {
	Lines []CartLineInput `json:"lines" validate:"dive"`
}

type CartLineInput struct {
	ID          string           `json:"id" validate:"required"`
	Quantity    int              `json:"quantity" validate:"gte=0"`
	Merchandise MerchandiseInput `json:"merchandise"`
}

// MerchandiseInput is a GraphQL union; __typename picks the variant
type MerchandiseInput struct {
	Typename string        `json:"__typename"`
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title,omitempty"`
	Product  *ProductInput `json:"product,omitempty"`
}

type ProductInput struct {
	ID string `json:"id"`
}

type DiscountInput struct {
	DiscountClasses []types.DiscountClass `json:"discountClasses" validate:"dive,discount_class"`
	Metafield       *MetafieldInput       `json:"metafield,omitempty"`
}

// MetafieldInput carries the raw configuration blob stored on the discount
type MetafieldInput struct {
	Value string `json:"value"`
}

func (r *RunRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// RawConfiguration returns the configuration blob, empty when the discount
// has no metafield
func (r *RunRequest) RawConfiguration() string {
	if r.Discount.Metafield == nil {
		return ""
	}
	return r.Discount.Metafield.Value
}

// ToCartLines converts the platform cart into domain lines
func (r *RunRequest) ToCartLines() []cart.Line {
	return lo.Map(r.Cart.Lines, func(line CartLineInput, _ int) cart.Line {
		return cart.Line{
			ID:          line.ID,
			Quantity:    line.Quantity,
			Merchandise: line.Merchandise.toDomain(),
		}
	})
}

func (m MerchandiseInput) toDomain() cart.Merchandise {
	if types.MerchandiseType(m.Typename) != types.MerchandiseTypeProductVariant {
		return &cart.CustomProduct{Title: m.Title}
	}

	variant := &cart.ProductVariant{ID: m.ID}
	if m.Product != nil {
		variant.Product = cart.Product{ID: m.Product.ID}
	}
	return variant
}

// RunResponse is the function output returned to the platform
type RunResponse struct {
	Operations []OperationResponse `json:"operations"`
}

// OperationResponse has exactly one field set
type OperationResponse struct {
	ProductDiscountsAdd *ProductDiscountsAddResponse `json:"productDiscountsAdd,omitempty"`
	OrderDiscountsAdd   *OrderDiscountsAddResponse   `json:"orderDiscountsAdd,omitempty"`
}

type ProductDiscountsAddResponse struct {
	Candidates        []ProductDiscountCandidateResponse     `json:"candidates"`
	SelectionStrategy types.ProductDiscountSelectionStrategy `json:"selectionStrategy"`
}

type ProductDiscountCandidateResponse struct {
	Message string                  `json:"message"`
	Targets []ProductTargetResponse `json:"targets"`
	Value   ValueResponse           `json:"value"`
}

type ProductTargetResponse struct {
	CartLine CartLineTargetResponse `json:"cartLine"`
}

type CartLineTargetResponse struct {
	ID string `json:"id"`
}

type ValueResponse struct {
	Percentage *PercentageResponse `json:"percentage,omitempty"`
}

type PercentageResponse struct {
	Value float64 `json:"value"`
}

type OrderDiscountsAddResponse struct {
	Candidates        []OrderDiscountCandidateResponse     `json:"candidates"`
	SelectionStrategy types.OrderDiscountSelectionStrategy `json:"selectionStrategy"`
}

type OrderDiscountCandidateResponse struct {
	Message string                `json:"message"`
	Targets []OrderTargetResponse `json:"targets"`
	Value   ValueResponse         `json:"value"`
}

type OrderTargetResponse struct {
	OrderSubtotal OrderSubtotalTargetResponse `json:"orderSubtotal"`
}

type OrderSubtotalTargetResponse struct {
	ExcludedCartLineIDs []string `json:"excludedCartLineIds"`
}

// NewRunResponse renders evaluator operations in the platform shape
func NewRunResponse(operations []discountfunction.Operation) *RunResponse {
	return &RunResponse{
		Operations: lo.Map(operations, func(op discountfunction.Operation, _ int) OperationResponse {
			return newOperationResponse(op)
		}),
	}
}

func newOperationResponse(op discountfunction.Operation) OperationResponse {
	var resp OperationResponse

	if add := op.ProductDiscountsAdd; add != nil {
		resp.ProductDiscountsAdd = &ProductDiscountsAddResponse{
			SelectionStrategy: add.SelectionStrategy,
			Candidates: lo.Map(add.Candidates, func(c discountfunction.ProductDiscountCandidate, _ int) ProductDiscountCandidateResponse {
				return ProductDiscountCandidateResponse{
					Message: c.Message,
					Targets: lo.Map(c.Targets, func(t discountfunction.CartLineTarget, _ int) ProductTargetResponse {
						return ProductTargetResponse{CartLine: CartLineTargetResponse{ID: t.ID}}
					}),
					Value: newValueResponse(c.Value),
				}
			}),
		}
	}

	if add := op.OrderDiscountsAdd; add != nil {
		resp.OrderDiscountsAdd = &OrderDiscountsAddResponse{
			SelectionStrategy: add.SelectionStrategy,
			Candidates: lo.Map(add.Candidates, func(c discountfunction.OrderDiscountCandidate, _ int) OrderDiscountCandidateResponse {
				excluded := c.ExcludedCartLineIDs
				if excluded == nil {
					excluded = []string{}
				}
				return OrderDiscountCandidateResponse{
					Message: c.Message,
					Targets: []OrderTargetResponse{{
						OrderSubtotal: OrderSubtotalTargetResponse{ExcludedCartLineIDs: excluded},
					}},
					Value: newValueResponse(c.Value),
				}
			}),
		}
	}

	return resp
}

func newValueResponse(v discountfunction.CandidateValue) ValueResponse {
	if v.Percentage == nil {
		return ValueResponse{}
	}
	return ValueResponse{
		Percentage: &PercentageResponse{Value: v.Percentage.Value.InexactFloat64()},
	}
}
