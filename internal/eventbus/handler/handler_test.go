package handler

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub/memory"
	"github.com/hanahub/ab-discount-app/internal/sentry"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*handler, cache.Cache) {
	t.Helper()

	cfg := config.GetDefaultConfig()
	log := logger.NewNoop()
	c := cache.NewInMemoryCache(cfg)

	h, ok := NewHandler(memory.NewPubSub(log), cfg, c, log, sentry.NewSentryService(cfg, log)).(*handler)
	require.True(t, ok)
	return h, c
}

func eventMessage(t *testing.T, event types.ConfigurationEvent) *message.Message {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestProcessMessage_EvictsShopConfiguration(t *testing.T) {
	h, c := newTestHandler(t)
	ctx := context.Background()

	evicted := cache.GenerateKey(cache.PrefixVariantDiscounts, "shop_1")
	kept := cache.GenerateKey(cache.PrefixVariantDiscounts, "shop_2")
	c.Set(ctx, evicted, "cached", 0)
	c.Set(ctx, kept, "cached", 0)

	err := h.processMessage(eventMessage(t, types.ConfigurationEvent{
		ID:        "event_1",
		EventName: types.EventVariantDiscountsUpdated,
		ShopID:    "shop_1",
		Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, err)

	_, found := c.Get(ctx, evicted)
	assert.False(t, found)
	_, found = c.Get(ctx, kept)
	assert.True(t, found)
}

func TestProcessMessage_IgnoresUndecodablePayload(t *testing.T) {
	h, c := newTestHandler(t)
	ctx := context.Background()

	key := cache.GenerateKey(cache.PrefixVariantDiscounts, "shop_1")
	c.Set(ctx, key, "cached", 0)

	err := h.processMessage(message.NewMessage(watermill.NewUUID(), []byte("not json")))
	assert.NoError(t, err)

	_, found := c.Get(ctx, key)
	assert.True(t, found)
}

func TestProcessMessage_WithoutShop(t *testing.T) {
	h, _ := newTestHandler(t)

	err := h.processMessage(eventMessage(t, types.ConfigurationEvent{
		ID:        "event_2",
		EventName: types.EventVariantDiscountsUpdated,
	}))
	assert.NoError(t, err)
}
