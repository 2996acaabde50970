package dto

import (
	"testing"

	"github.com/hanahub/ab-discount-app/internal/domain/cart"
	"github.com/hanahub/ab-discount-app/internal/domain/discountfunction"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCartLines(t *testing.T) {
	req := RunRequest{
		Cart: CartInput{Lines: []CartLineInput{
			{
				ID:       "L1",
				Quantity: 2,
				Merchandise: MerchandiseInput{
					Typename: "ProductVariant",
					ID:       "v1",
					Product:  &ProductInput{ID: "p1"},
				},
			},
			{
				ID:          "L2",
				Quantity:    1,
				Merchandise: MerchandiseInput{Typename: "CustomProduct", Title: "Engraving"},
			},
		}},
	}

	lines := req.ToCartLines()
	require.Len(t, lines, 2)

	variant, ok := lines[0].ProductVariant()
	require.True(t, ok)
	assert.Equal(t, "v1", variant.ID)
	assert.Equal(t, "p1", variant.Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)

	_, ok = lines[1].ProductVariant()
	assert.False(t, ok)
	assert.Equal(t, &cart.CustomProduct{Title: "Engraving"}, lines[1].Merchandise)
}

func TestRawConfiguration(t *testing.T) {
	var req RunRequest
	assert.Equal(t, "", req.RawConfiguration())

	req.Discount.Metafield = &MetafieldInput{Value: `{"variantDiscounts":{}}`}
	assert.Equal(t, `{"variantDiscounts":{}}`, req.RawConfiguration())
}

func TestNewRunResponse(t *testing.T) {
	resp := NewRunResponse([]discountfunction.Operation{
		{
			ProductDiscountsAdd: &discountfunction.ProductDiscountsAddOperation{
				SelectionStrategy: types.ProductDiscountSelectionStrategyAll,
				Candidates: []discountfunction.ProductDiscountCandidate{{
					Message: "12.5% OFF",
					Targets: []discountfunction.CartLineTarget{{ID: "L1"}},
					Value: discountfunction.CandidateValue{
						Percentage: &discountfunction.Percentage{Value: decimal.RequireFromString("12.5")},
					},
				}},
			},
		},
		{
			OrderDiscountsAdd: &discountfunction.OrderDiscountsAddOperation{
				SelectionStrategy: types.OrderDiscountSelectionStrategyFirst,
				Candidates: []discountfunction.OrderDiscountCandidate{{
					Message: "5% OFF",
					Value: discountfunction.CandidateValue{
						Percentage: &discountfunction.Percentage{Value: decimal.NewFromInt(5)},
					},
				}},
			},
		},
	})

	require.Len(t, resp.Operations, 2)

	product := resp.Operations[0].ProductDiscountsAdd
	require.NotNil(t, product)
	assert.Nil(t, resp.Operations[0].OrderDiscountsAdd)
	assert.Equal(t, 12.5, product.Candidates[0].Value.Percentage.Value)
	assert.Equal(t, "L1", product.Candidates[0].Targets[0].CartLine.ID)

	order := resp.Operations[1].OrderDiscountsAdd
	require.NotNil(t, order)
	assert.Nil(t, resp.Operations[1].ProductDiscountsAdd)
	assert.Equal(t, []string{}, order.Candidates[0].Targets[0].OrderSubtotal.ExcludedCartLineIDs)

	empty := NewRunResponse(nil)
	assert.NotNil(t, empty.Operations)
	assert.Empty(t, empty.Operations)
}
