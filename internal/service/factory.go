package service

import (
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/domain/discountfunction"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/eventbus/publisher"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
	"github.com/hanahub/ab-discount-app/internal/sentry"
	"github.com/shopspring/decimal"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	VariantDiscountRepo variantdiscount.Repository

	// Publishers
	EventPublisher publisher.EventPublisher

	// Discount function
	Decoder   *variantdiscount.Decoder
	Evaluator *discountfunction.Evaluator
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	variantDiscountRepo variantdiscount.Repository,
	eventPublisher publisher.EventPublisher,
	decoder *variantdiscount.Decoder,
	evaluator *discountfunction.Evaluator,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		DB:                  db,
		VariantDiscountRepo: variantDiscountRepo,
		EventPublisher:      eventPublisher,
		Decoder:             decoder,
		Evaluator:           evaluator,
	}
}

// NewDecoder reports malformed configurations to sentry
func NewDecoder(logger *logger.Logger, sentryService *sentry.Service) *variantdiscount.Decoder {
	if sentryService == nil {
		return variantdiscount.NewDecoder(logger, nil)
	}
	return variantdiscount.NewDecoder(logger, sentryService)
}

// NewEvaluator builds the evaluator from the discount_function config section
func NewEvaluator(cfg *config.Configuration) *discountfunction.Evaluator {
	rule := cfg.DiscountFunction.TargetProduct
	return discountfunction.NewEvaluator(
		discountfunction.WithTargetProduct(discountfunction.TargetProductRule{
			ProductIDs: rule.ProductIDs,
			Percentage: decimal.NewFromFloat(rule.Percentage),
		}),
	)
}
