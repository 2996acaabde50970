package dto

import (
	"encoding/json"
	"time"

	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/hanahub/ab-discount-app/internal/validator"
)

// SaveVariantDiscountsRequest is what the admin screen submits. Values may
// be numbers, numeric strings or empty strings.
type SaveVariantDiscountsRequest struct {
	VariantDiscounts map[string]json.RawMessage `json:"variantDiscounts" validate:"required"`
}

func (r *SaveVariantDiscountsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for variantID := range r.VariantDiscounts {
		if variantID == "" {
			return ierr.NewError("empty variant id").
				WithHint("Every discount must name a product variant").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// VariantDiscountsResponse is a shop's configuration as the admin screen
// reads it
type VariantDiscountsResponse struct {
	ShopID           string                `json:"shop_id"`
	ConfigurationID  string                `json:"configuration_id,omitempty"`
	VariantDiscounts map[string]float64    `json:"variantDiscounts"`
	DiscountClasses  []types.DiscountClass `json:"discount_classes"`
	UpdatedAt        *time.Time            `json:"updated_at,omitempty"`
}

// NewVariantDiscountsResponse builds the response for a shop. stored may be
// nil when the shop never saved a configuration.
func NewVariantDiscountsResponse(
	shopID string,
	cfg variantdiscount.Configuration,
	stored *variantdiscount.StoredConfiguration,
) *VariantDiscountsResponse {
	resp := &VariantDiscountsResponse{
		ShopID:           shopID,
		VariantDiscounts: make(map[string]float64, cfg.Len()),
		DiscountClasses:  []types.DiscountClass{},
	}
	for variantID, percentage := range cfg.VariantDiscounts {
		resp.VariantDiscounts[variantID] = percentage.InexactFloat64()
	}

	if stored != nil {
		resp.ConfigurationID = stored.ID
		if stored.DiscountClasses != nil {
			resp.DiscountClasses = stored.DiscountClasses
		}
		updatedAt := stored.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
