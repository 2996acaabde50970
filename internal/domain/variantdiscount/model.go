package variantdiscount

import (
	"sort"

	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/shopspring/decimal"
)

// Configuration maps a variant id to the percentage taken off that variant.
// Only strictly positive percentages are ever held; NewConfiguration is the
// single place that rule is enforced.
type Configuration struct {
	VariantDiscounts map[string]decimal.Decimal
}

// NewConfiguration copies the given mapping, dropping every entry whose
// percentage is zero or negative
func NewConfiguration(discounts map[string]decimal.Decimal) Configuration {
	filtered := make(map[string]decimal.Decimal, len(discounts))
	for variantID, percentage := range discounts {
		if !percentage.IsPositive() {
			continue
		}
		filtered[variantID] = percentage
	}
	return Configuration{VariantDiscounts: filtered}
}

// PercentageFor returns the configured percentage for a variant, zero when
// the variant has none
func (c Configuration) PercentageFor(variantID string) decimal.Decimal {
	if percentage, ok := c.VariantDiscounts[variantID]; ok {
		return percentage
	}
	return decimal.Zero
}

func (c Configuration) IsEmpty() bool {
	return len(c.VariantDiscounts) == 0
}

func (c Configuration) Len() int {
	return len(c.VariantDiscounts)
}

// VariantIDs returns the configured variant ids in lexical order
func (c Configuration) VariantIDs() []string {
	ids := make([]string, 0, len(c.VariantDiscounts))
	for id := range c.VariantDiscounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StoredConfiguration is the persisted form of a shop's configuration: the
// serialized blob plus the coordinates it is stored under
type StoredConfiguration struct {
	ID              string                `db:"id" json:"id"`
	ShopID          string                `db:"shop_id" json:"shop_id"`
	Namespace       string                `db:"namespace" json:"namespace"`
	Key             string                `db:"key" json:"key"`
	ValueType       string                `db:"value_type" json:"value_type"`
	Value           string                `db:"value" json:"value"`
	DiscountTitle   string                `db:"discount_title" json:"discount_title"`
	DiscountClasses []types.DiscountClass `db:"-" json:"discount_classes"`
	types.BaseModel
}
