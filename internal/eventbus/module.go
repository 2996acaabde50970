package eventbus

import (
	"context"

	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/eventbus/handler"
	"github.com/hanahub/ab-discount-app/internal/eventbus/publisher"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub"
	"github.com/hanahub/ab-discount-app/internal/pubsub/kafka"
	"github.com/hanahub/ab-discount-app/internal/pubsub/memory"
	pubsubRouter "github.com/hanahub/ab-discount-app/internal/pubsub/router"
	"github.com/hanahub/ab-discount-app/internal/types"
	"go.uber.org/fx"
)

// Module provides the configuration event bus: pubsub, publisher, router
// and the cache eviction handler
var Module = fx.Options(
	fx.Provide(
		providePubSub,
		publisher.NewPublisher,
		handler.NewHandler,
		pubsubRouter.NewRouter,
	),
	fx.Invoke(registerRouter),
)

func providePubSub(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	logger *logger.Logger,
) (pubsub.PubSub, error) {
	var (
		ps  pubsub.PubSub
		err error
	)

	switch cfg.EventBus.PubSub {
	case types.KafkaPubSub:
		ps, err = kafka.NewPubSub(cfg, logger)
		if err != nil {
			return nil, err
		}
	default:
		ps = memory.NewPubSub(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ps.Close()
		},
	})
	return ps, nil
}

func registerRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	h handler.Handler,
	logger *logger.Logger,
) {
	h.RegisterHandler(router)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := router.Run(ctx); err != nil {
					logger.Errorw("event router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return router.Close()
		},
	})
}
