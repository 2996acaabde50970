package testutil

import (
	"context"
	"sync/atomic"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/eventbus/publisher"
	"github.com/hanahub/ab-discount-app/internal/types"
)

var _ publisher.EventPublisher = (*FailingPublisher)(nil)

// FailingPublisher rejects every event, for exercising publish failures
type FailingPublisher struct {
	attempts atomic.Int32
}

func NewFailingPublisher() *FailingPublisher {
	return &FailingPublisher{}
}

func (p *FailingPublisher) Publish(_ context.Context, event *types.ConfigurationEvent) error {
	p.attempts.Add(1)
	return ierr.NewErrorf("event bus unavailable for %s", event.EventName).
		Mark(ierr.ErrSystem)
}

func (p *FailingPublisher) Close() error {
	return nil
}

// Attempts returns how many publishes were tried
func (p *FailingPublisher) Attempts() int {
	return int(p.attempts.Load())
}
