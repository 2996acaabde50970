package publisher

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hanahub/ab-discount-app/internal/config"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub"
	"github.com/hanahub/ab-discount-app/internal/types"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventPublisher announces configuration changes to every instance
type EventPublisher interface {
	Publish(ctx context.Context, event *types.ConfigurationEvent) error
	Close() error
}

type eventPublisher struct {
	pubSub pubsub.PubSub
	config *config.EventBusConfig
	logger *logger.Logger
}

func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) EventPublisher {
	return &eventPublisher{
		pubSub: pubSub,
		config: &cfg.EventBus,
		logger: logger,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, event *types.ConfigurationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode configuration event").
			Mark(ierr.ErrSystem)
	}

	messageID := event.ID
	if messageID == "" {
		messageID = watermill.NewUUID()
	}

	msg := message.NewMessage(messageID, payload)
	msg.Metadata.Set("shop_id", event.ShopID)
	msg.Metadata.Set("event_name", event.EventName)

	p.logger.Debugw("publishing configuration event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"shop_id", event.ShopID,
		"topic", p.config.Topic,
	)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish configuration event",
			"error", err,
			"event_id", event.ID,
			"shop_id", event.ShopID,
		)
		return ierr.WithError(err).
			WithHint("Failed to publish configuration event").
			Mark(ierr.ErrSystem)
	}

	return nil
}

// Close closes the publisher
func (p *eventPublisher) Close() error {
	return p.pubSub.Close()
}
