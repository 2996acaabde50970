package service

import (
	"context"

	"github.com/hanahub/ab-discount-app/internal/api/dto"
	"github.com/hanahub/ab-discount-app/internal/domain/discountfunction"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/hanahub/ab-discount-app/internal/service")

// DiscountFunctionService runs the cart discount function
type DiscountFunctionService interface {
	// Run evaluates the cart against the configuration carried in the request
	Run(ctx context.Context, req *dto.RunRequest) (*dto.RunResponse, error)
	// RunForShop evaluates the cart against the shop's stored configuration
	RunForShop(ctx context.Context, shopID string, req *dto.RunRequest) (*dto.RunResponse, error)
}

type discountFunctionService struct {
	ServiceParams
}

func NewDiscountFunctionService(params ServiceParams) DiscountFunctionService {
	return &discountFunctionService{
		ServiceParams: params,
	}
}

func (s *discountFunctionService) Run(ctx context.Context, req *dto.RunRequest) (*dto.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := s.Decoder.Decode(ctx, req.RawConfiguration())
	return s.evaluate(ctx, req, cfg), nil
}

func (s *discountFunctionService) RunForShop(ctx context.Context, shopID string, req *dto.RunRequest) (*dto.RunResponse, error) {
	if shopID == "" {
		return nil, ierr.NewError("shop_id is required").
			WithHint("Shop ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.loadConfiguration(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, req, cfg), nil
}

// loadConfiguration decodes the shop's stored blob. A shop without a record
// runs with an empty configuration.
func (s *discountFunctionService) loadConfiguration(ctx context.Context, shopID string) (variantdiscount.Configuration, error) {
	stored, err := s.VariantDiscountRepo.Get(ctx, shopID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return variantdiscount.NewConfiguration(nil), nil
		}
		return variantdiscount.Configuration{}, err
	}
	return s.Decoder.Decode(ctx, stored.Value), nil
}

func (s *discountFunctionService) evaluate(
	ctx context.Context,
	req *dto.RunRequest,
	cfg variantdiscount.Configuration,
) *dto.RunResponse {
	_, span := tracer.Start(ctx, "discount_function.evaluate",
		trace.WithAttributes(
			attribute.String("shop_id", types.GetShopID(ctx)),
			attribute.Int("cart.lines", len(req.Cart.Lines)),
			attribute.Int("configuration.variants", cfg.Len()),
		),
	)
	defer span.End()

	operations := s.Evaluator.Evaluate(req.ToCartLines(), cfg, req.Discount.DiscountClasses)

	candidates := lo.SumBy(operations, func(op discountfunction.Operation) int {
		if op.ProductDiscountsAdd == nil {
			return 0
		}
		return len(op.ProductDiscountsAdd.Candidates)
	})
	span.SetAttributes(
		attribute.Int("operations", len(operations)),
		attribute.Int("candidates", candidates),
	)

	s.Logger.Debugw("discount function evaluated",
		"request_id", types.GetRequestID(ctx),
		"shop_id", types.GetShopID(ctx),
		"lines", len(req.Cart.Lines),
		"configured_variants", cfg.Len(),
		"operations", len(operations),
		"candidates", candidates,
	)

	return dto.NewRunResponse(operations)
}
