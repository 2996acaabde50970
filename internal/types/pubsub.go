package types

import (
	"time"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/samber/lo"
)

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// MemoryPubSub uses in-memory implementation
	MemoryPubSub PubSubType = "memory"

	// KafkaPubSub uses Kafka implementation
	KafkaPubSub PubSubType = "kafka"
)

func (p PubSubType) Validate() error {
	allowed := []PubSubType{MemoryPubSub, KafkaPubSub}
	if !lo.Contains(allowed, p) {
		return ierr.NewErrorf("invalid pubsub type: %s", p).
			WithHintf("Event bus must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// TopicVariantDiscountsUpdated carries an event every time a shop's
	// variant discount configuration is saved
	TopicVariantDiscountsUpdated = "variant_discounts.updated"

	EventVariantDiscountsUpdated = "variant_discounts.updated"
)

// ConfigurationEvent tells every instance that a shop's stored
// configuration changed
type ConfigurationEvent struct {
	ID              string    `json:"id"`
	EventName       string    `json:"event_name"`
	ShopID          string    `json:"shop_id"`
	ConfigurationID string    `json:"configuration_id"`
	RequestID       string    `json:"request_id,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
