package handler

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub"
	pubsubRouter "github.com/hanahub/ab-discount-app/internal/pubsub/router"
	"github.com/hanahub/ab-discount-app/internal/sentry"
	"github.com/hanahub/ab-discount-app/internal/types"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler reacts to configuration events
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

// handler drops the cached configuration of the shop named in the event so
// the next run reads the saved value
type handler struct {
	pubSub pubsub.PubSub
	config *config.EventBusConfig
	cache  cache.Cache
	logger *logger.Logger
	sentry *sentry.Service
}

func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	cache cache.Cache,
	logger *logger.Logger,
	sentry *sentry.Service,
) Handler {
	return &handler{
		pubSub: pubSub,
		config: &cfg.EventBus,
		cache:  cache,
		logger: logger,
		sentry: sentry,
	}
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"variant_discounts_cache_eviction",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

func (h *handler) processMessage(msg *message.Message) error {
	var event types.ConfigurationEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal configuration event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	ctx := types.SetShopID(msg.Context(), event.ShopID)
	ctx = types.SetRequestID(ctx, event.RequestID)

	span, ctx := h.sentry.MonitorEventProcessing(ctx, event.EventName, event.Timestamp, map[string]interface{}{
		"shop_id":      event.ShopID,
		"message_uuid": msg.UUID,
	})
	defer sentry.FinishSpan(span)

	h.evict(ctx, event.ShopID)
	return nil
}

func (h *handler) evict(ctx context.Context, shopID string) {
	if shopID == "" {
		return
	}

	h.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVariantDiscounts, shopID))
	h.logger.Debugw("evicted cached variant discount configuration",
		"shop_id", shopID,
		"request_id", types.GetRequestID(ctx),
	)
}
