package service

import (
	"context"
	"time"

	"github.com/hanahub/ab-discount-app/internal/api/dto"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
)

// VariantDiscountService loads and saves a shop's per-variant percentages
type VariantDiscountService interface {
	GetVariantDiscounts(ctx context.Context, shopID string) (*dto.VariantDiscountsResponse, error)
	SaveVariantDiscounts(ctx context.Context, shopID string, req *dto.SaveVariantDiscountsRequest) (*dto.VariantDiscountsResponse, error)
}

type variantDiscountService struct {
	ServiceParams
}

func NewVariantDiscountService(params ServiceParams) VariantDiscountService {
	return &variantDiscountService{
		ServiceParams: params,
	}
}

func (s *variantDiscountService) GetVariantDiscounts(ctx context.Context, shopID string) (*dto.VariantDiscountsResponse, error) {
	if err := validateShopID(shopID); err != nil {
		return nil, err
	}

	stored, err := s.VariantDiscountRepo.Get(ctx, shopID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return dto.NewVariantDiscountsResponse(shopID, variantdiscount.NewConfiguration(nil), nil), nil
		}
		return nil, err
	}

	cfg := s.Decoder.Decode(ctx, stored.Value)
	return dto.NewVariantDiscountsResponse(shopID, cfg, stored), nil
}

func (s *variantDiscountService) SaveVariantDiscounts(
	ctx context.Context,
	shopID string,
	req *dto.SaveVariantDiscountsRequest,
) (*dto.VariantDiscountsResponse, error) {
	if err := validateShopID(shopID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := variantdiscount.FromSubmittedValues(req.VariantDiscounts)
	value, err := cfg.Serialize()
	if err != nil {
		return nil, err
	}

	var stored *variantdiscount.StoredConfiguration
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.VariantDiscountRepo.Get(ctx, shopID)
		if err != nil && !ierr.IsNotFound(err) {
			return err
		}

		if existing != nil {
			existing.Value = value
			if err := s.VariantDiscountRepo.Update(ctx, existing); err != nil {
				return err
			}
			stored = existing
			return nil
		}

		// nothing to remember for a shop that never configured a discount
		if cfg.IsEmpty() {
			return nil
		}

		stored = &variantdiscount.StoredConfiguration{
			ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FUNCTION_CONFIGURATION),
			ShopID:          shopID,
			Namespace:       types.FunctionConfigurationNamespace,
			Key:             types.FunctionConfigurationKey,
			ValueType:       types.FunctionConfigurationValueType,
			Value:           value,
			DiscountTitle:   types.FunctionConfigurationDiscountTitle,
			DiscountClasses: []types.DiscountClass{types.DiscountClassProduct},
			BaseModel:       types.GetDefaultBaseModel(ctx),
		}
		return s.VariantDiscountRepo.Upsert(ctx, stored)
	})
	if err != nil {
		return nil, err
	}

	if stored != nil {
		s.publishUpdated(ctx, stored)
	}

	s.Logger.Infow("variant discounts saved",
		"shop_id", shopID,
		"configured_variants", cfg.Len(),
		"stored", stored != nil,
	)

	return dto.NewVariantDiscountsResponse(shopID, cfg, stored), nil
}

// publishUpdated announces the change so other instances drop their cached
// copy. A failed publish only delays eviction until the cache expires.
func (s *variantDiscountService) publishUpdated(ctx context.Context, stored *variantdiscount.StoredConfiguration) {
	event := &types.ConfigurationEvent{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		EventName:       types.EventVariantDiscountsUpdated,
		ShopID:          stored.ShopID,
		ConfigurationID: stored.ID,
		RequestID:       types.GetRequestID(ctx),
		UserID:          types.GetUserID(ctx),
		Timestamp:       time.Now().UTC(),
	}

	if err := s.EventPublisher.Publish(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish configuration event",
			"error", err,
			"shop_id", stored.ShopID,
			"configuration_id", stored.ID,
		)
	}
}

func validateShopID(shopID string) error {
	if shopID == "" {
		return ierr.NewError("shop_id is required").
			WithHint("Shop ID is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
