package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/hanahub/ab-discount-app/internal/api"
	v1 "github.com/hanahub/ab-discount-app/internal/api/v1"
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/eventbus"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
	"github.com/hanahub/ab-discount-app/internal/pyroscope"
	"github.com/hanahub/ab-discount-app/internal/repository"
	"github.com/hanahub/ab-discount-app/internal/sentry"
	"github.com/hanahub/ab-discount-app/internal/service"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/hanahub/ab-discount-app/internal/validator"
	"go.uber.org/fx"
)

func init() {
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			provideDB,

			// Repositories
			repository.NewVariantDiscountRepository,
			repository.NewTransactor,

			// Discount function
			service.NewDecoder,
			service.NewEvaluator,
		),
		sentry.Module(),
		pyroscope.Module(),
	)

	// Event bus must be wired before the services that publish on it
	opts = append(opts, eventbus.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewDiscountFunctionService,
			service.NewVariantDiscountService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideDB connects to postgres outside local mode, where the in-memory
// store is used instead
func provideDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	if cfg.Deployment.Mode == types.ModeLocal {
		return nil, nil
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func provideHandlers(
	logger *logger.Logger,
	discountFunctionService service.DiscountFunctionService,
	variantDiscountService service.VariantDiscountService,
) api.Handlers {
	return api.Handlers{
		Health:           v1.NewHealthHandler(logger),
		DiscountFunction: v1.NewDiscountFunctionHandler(discountFunctionService, logger),
		VariantDiscount:  v1.NewVariantDiscountHandler(variantDiscountService, logger),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	switch cfg.Deployment.Mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(lc, r, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", cfg.Deployment.Mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

// startAWSLambdaAPI hands the gin engine to the API Gateway proxy once the
// rest of the app, including the event router, has started
func startAWSLambdaAPI(lc fx.Lifecycle, r *gin.Engine, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting AWS Lambda API handler")
			ginLambda := ginadapter.New(r)
			go lambda.Start(ginLambda.ProxyWithContext)
			return nil
		},
	})
}
