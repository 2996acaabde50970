package discountfunction

import (
	"context"
	"testing"

	"github.com/hanahub/ab-discount-app/internal/domain/cart"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variantLine(lineID, variantID, productID string) cart.Line {
	return cart.Line{
		ID:       lineID,
		Quantity: 1,
		Merchandise: &cart.ProductVariant{
			ID:      variantID,
			Product: cart.Product{ID: productID},
		},
	}
}

func configOf(entries map[string]int64) variantdiscount.Configuration {
	discounts := make(map[string]decimal.Decimal, len(entries))
	for id, p := range entries {
		discounts[id] = decimal.NewFromInt(p)
	}
	return variantdiscount.NewConfiguration(discounts)
}

type expectedCandidate struct {
	message    string
	percentage string
	targets    []string
}

func TestEvaluator_Evaluate(t *testing.T) {
	productOnly := []types.DiscountClass{types.DiscountClassProduct}

	tests := []struct {
		name       string
		lines      []cart.Line
		cfg        variantdiscount.Configuration
		classes    []types.DiscountClass
		candidates []expectedCandidate
	}{
		{
			name: "shared percentage becomes one candidate",
			lines: []cart.Line{
				variantLine("l1", "v1", "p1"),
				variantLine("l2", "v2", "p1"),
				variantLine("l3", "v3", "p2"),
			},
			cfg:     configOf(map[string]int64{"v1": 20, "v2": 20}),
			classes: productOnly,
			candidates: []expectedCandidate{
				{message: "20% OFF", percentage: "20", targets: []string{"l1", "l2"}},
			},
		},
		{
			name: "distinct percentages become separate candidates",
			lines: []cart.Line{
				variantLine("l1", "v1", "p1"),
				variantLine("l2", "v2", "p1"),
			},
			cfg:     configOf(map[string]int64{"v1": 10, "v2": 30}),
			classes: productOnly,
			candidates: []expectedCandidate{
				{message: "10% OFF", percentage: "10", targets: []string{"l1"}},
				{message: "30% OFF", percentage: "30", targets: []string{"l2"}},
			},
		},
		{
			name:    "zero percentage is not a discount",
			lines:   []cart.Line{variantLine("l1", "v1", "p1")},
			cfg:     configOf(map[string]int64{"v1": 0}),
			classes: productOnly,
		},
		{
			name: "candidates follow first appearance and targets keep cart order",
			lines: []cart.Line{
				variantLine("l1", "v2", "p1"),
				variantLine("l2", "v1", "p1"),
				variantLine("l3", "v3", "p1"),
				variantLine("l4", "v4", "p1"),
			},
			cfg:     configOf(map[string]int64{"v1": 10, "v2": 30, "v3": 10, "v4": 30}),
			classes: productOnly,
			candidates: []expectedCandidate{
				{message: "30% OFF", percentage: "30", targets: []string{"l1", "l4"}},
				{message: "10% OFF", percentage: "10", targets: []string{"l2", "l3"}},
			},
		},
		{
			name: "custom products are never discounted",
			lines: []cart.Line{
				{ID: "l1", Quantity: 1, Merchandise: &cart.CustomProduct{Title: "gift wrap"}},
				{ID: "l2", Quantity: 1},
				variantLine("l3", "v1", "p1"),
			},
			cfg:     configOf(map[string]int64{"v1": 5}),
			classes: productOnly,
			candidates: []expectedCandidate{
				{message: "5% OFF", percentage: "5", targets: []string{"l3"}},
			},
		},
		{
			name:    "empty cart",
			cfg:     configOf(map[string]int64{"v1": 10}),
			classes: productOnly,
		},
		{
			name:    "product class disabled",
			lines:   []cart.Line{variantLine("l1", "v1", "p1")},
			cfg:     configOf(map[string]int64{"v1": 10}),
			classes: []types.DiscountClass{types.DiscountClassOrder},
		},
		{
			name:  "no classes",
			lines: []cart.Line{variantLine("l1", "v1", "p1")},
			cfg:   configOf(map[string]int64{"v1": 10}),
		},
		{
			name:    "empty configuration",
			lines:   []cart.Line{variantLine("l1", "v1", "p1")},
			cfg:     variantdiscount.NewConfiguration(nil),
			classes: []types.DiscountClass{types.DiscountClassProduct, types.DiscountClassOrder},
		},
	}

	evaluator := NewEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := evaluator.Evaluate(tt.lines, tt.cfg, tt.classes)
			require.NotNil(t, ops)

			if len(tt.candidates) == 0 {
				assert.Empty(t, ops)
				return
			}

			require.Len(t, ops, 1)
			require.NotNil(t, ops[0].ProductDiscountsAdd)
			assert.Nil(t, ops[0].OrderDiscountsAdd)

			add := ops[0].ProductDiscountsAdd
			assert.Equal(t, types.ProductDiscountSelectionStrategyAll, add.SelectionStrategy)
			require.Len(t, add.Candidates, len(tt.candidates))
			for i, expected := range tt.candidates {
				got := add.Candidates[i]
				assert.Equal(t, expected.message, got.Message)
				assert.Equal(t, expected.targets, got.TargetIDs())
				require.NotNil(t, got.Value.Percentage)
				assert.True(t, decimal.RequireFromString(expected.percentage).Equal(got.Value.Percentage.Value))
			}
		})
	}
}

func TestEvaluator_GarbageConfiguration(t *testing.T) {
	cfg := variantdiscount.NewDecoder(logger.NewNoop(), nil).Decode(context.Background(), "{garbage")
	assert.True(t, cfg.IsEmpty())

	ops := NewEvaluator().Evaluate(
		[]cart.Line{variantLine("l1", "v1", "p1")},
		cfg,
		[]types.DiscountClass{types.DiscountClassProduct},
	)
	assert.Empty(t, ops)
}

func TestEvaluator_FractionalPercentagesGroupByValue(t *testing.T) {
	cfg := variantdiscount.NewConfiguration(map[string]decimal.Decimal{
		"v1": decimal.RequireFromString("12.50"),
		"v2": decimal.RequireFromString("12.5"),
	})

	ops := NewEvaluator().Evaluate(
		[]cart.Line{variantLine("l1", "v1", "p1"), variantLine("l2", "v2", "p1")},
		cfg,
		[]types.DiscountClass{types.DiscountClassProduct},
	)

	require.Len(t, ops, 1)
	require.Len(t, ops[0].ProductDiscountsAdd.Candidates, 1)
	assert.Equal(t, "12.5% OFF", ops[0].ProductDiscountsAdd.Candidates[0].Message)
	assert.Equal(t, []string{"l1", "l2"}, ops[0].ProductDiscountsAdd.Candidates[0].TargetIDs())
}

func TestEvaluator_TargetProduct(t *testing.T) {
	evaluator := NewEvaluator(WithTargetProduct(TargetProductRule{
		ProductIDs: []string{"gid://shopify/Product/42"},
		Percentage: decimal.NewFromInt(15),
	}))

	lines := []cart.Line{
		variantLine("l1", "v1", "gid://shopify/Product/42"),
		variantLine("l2", "v2", "gid://shopify/Product/42"),
		variantLine("l3", "v3", "gid://shopify/Product/7"),
	}
	cfg := configOf(map[string]int64{"v2": 25})

	ops := evaluator.Evaluate(lines, cfg, []types.DiscountClass{types.DiscountClassProduct})

	require.Len(t, ops, 1)
	candidates := ops[0].ProductDiscountsAdd.Candidates
	require.Len(t, candidates, 2)
	assert.Equal(t, "15% OFF", candidates[0].Message)
	assert.Equal(t, []string{"l1"}, candidates[0].TargetIDs())
	assert.Equal(t, "25% OFF", candidates[1].Message)
	assert.Equal(t, []string{"l2"}, candidates[1].TargetIDs())
}

func TestWithTargetProduct_DisabledRule(t *testing.T) {
	lines := []cart.Line{variantLine("l1", "v1", "p1")}
	classes := []types.DiscountClass{types.DiscountClassProduct}

	noProducts := NewEvaluator(WithTargetProduct(TargetProductRule{Percentage: decimal.NewFromInt(10)}))
	assert.Empty(t, noProducts.Evaluate(lines, variantdiscount.NewConfiguration(nil), classes))

	zeroPercentage := NewEvaluator(WithTargetProduct(TargetProductRule{ProductIDs: []string{"p1"}}))
	assert.Empty(t, zeroPercentage.Evaluate(lines, variantdiscount.NewConfiguration(nil), classes))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "20% OFF", Message(decimal.NewFromInt(20)))
	assert.Equal(t, "7.25% OFF", Message(decimal.RequireFromString("7.25")))
}
