package variantdiscount

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// TestSerializeRoundTrip verifies Parse(Serialize(cfg)) gives back cfg
func TestSerializeRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("serialized configurations parse back unchanged", prop.ForAll(
		func(ids []string, cents []int64) bool {
			discounts := make(map[string]decimal.Decimal)
			for i := 0; i < len(ids) && i < len(cents); i++ {
				discounts[fmt.Sprintf("gid://shopify/ProductVariant/%s", ids[i])] = decimal.New(cents[i], -2)
			}
			cfg := NewConfiguration(discounts)

			raw, err := cfg.Serialize()
			if err != nil {
				return false
			}
			parsed, err := Parse(raw)
			if err != nil {
				return false
			}

			if parsed.Len() != cfg.Len() {
				return false
			}
			for id, percentage := range cfg.VariantDiscounts {
				if !parsed.PercentageFor(id).Equal(percentage) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.Int64Range(-10000, 10000)),
	))

	properties.Property("parsed configurations never hold non positive percentages", prop.ForAll(
		func(values []int64) bool {
			discounts := make(map[string]decimal.Decimal, len(values))
			for i, v := range values {
				discounts[fmt.Sprintf("v%d", i)] = decimal.NewFromInt(v)
			}
			cfg := NewConfiguration(discounts)
			for _, percentage := range cfg.VariantDiscounts {
				if !percentage.IsPositive() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-100, 100)),
	))

	properties.TestingRun(t)
}
