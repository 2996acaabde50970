package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/hanahub/ab-discount-app/internal/api/v1"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pyroscope"
	"github.com/hanahub/ab-discount-app/internal/rest/middleware"
)

type Handlers struct {
	Health           *v1.HealthHandler
	DiscountFunction *v1.DiscountFunctionHandler
	VariantDiscount  *v1.VariantDiscountHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	profiler *pyroscope.Service,
) *gin.Engine {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(profiler),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.ShopMiddleware, middleware.SentryScopeMiddleware(cfg))

	discountFunction := v1Group.Group("/discount-function")
	{
		discountFunction.POST("/run", handlers.DiscountFunction.Run)
	}

	shops := v1Group.Group("/shops/:shop_id")
	{
		shops.GET("/variant-discounts", handlers.VariantDiscount.GetVariantDiscounts)
		shops.PUT("/variant-discounts", handlers.VariantDiscount.SaveVariantDiscounts)
		shops.POST("/discount-function/run", handlers.DiscountFunction.RunForShop)
	}

	return router
}
