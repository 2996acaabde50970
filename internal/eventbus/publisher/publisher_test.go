package publisher

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hanahub/ab-discount-app/internal/config"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub/memory"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log := logger.NewNoop()
	ps := memory.NewPubSub(log)
	pub := NewPublisher(ps, cfg, log)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := ps.Subscribe(ctx, cfg.EventBus.Topic)
	require.NoError(t, err)

	event := &types.ConfigurationEvent{
		ID:              "event_1",
		EventName:       types.EventVariantDiscountsUpdated,
		ShopID:          "shop_1",
		ConfigurationID: "fncfg_1",
		Timestamp:       time.Now().UTC(),
	}
	require.NoError(t, pub.Publish(ctx, event))

	var msg *message.Message
	select {
	case msg = <-messages:
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}

	assert.Equal(t, "event_1", msg.UUID)
	assert.Equal(t, "shop_1", msg.Metadata.Get("shop_id"))
	assert.Equal(t, types.EventVariantDiscountsUpdated, msg.Metadata.Get("event_name"))

	var decoded types.ConfigurationEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, "fncfg_1", decoded.ConfigurationID)
}

type closedPubSub struct{}

func (closedPubSub) Publish(context.Context, string, *message.Message) error {
	return assert.AnError
}

func (closedPubSub) Subscribe(context.Context, string) (<-chan *message.Message, error) {
	return nil, assert.AnError
}

func (closedPubSub) Close() error { return nil }

func TestPublish_Failure(t *testing.T) {
	cfg := config.GetDefaultConfig()
	pub := NewPublisher(closedPubSub{}, cfg, logger.NewNoop())

	err := pub.Publish(context.Background(), &types.ConfigurationEvent{ShopID: "shop_1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, ierr.HTTPStatusFromErr(err))
}
