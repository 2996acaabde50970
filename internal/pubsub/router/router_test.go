package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hanahub/ab-discount-app/internal/config"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/pubsub/memory"
	"github.com/hanahub/ab-discount-app/internal/sentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRetry(t *testing.T) {
	log := logger.NewNoop()

	assert.False(t, shouldRetry(log, ierr.NewError("bad").Mark(ierr.ErrValidation)))
	assert.False(t, shouldRetry(log, ierr.NewError("gone").Mark(ierr.ErrNotFound)))
	assert.False(t, shouldRetry(log, ierr.NewError("blob").Mark(ierr.ErrParse)))
	assert.False(t, shouldRetry(log, context.Canceled))
	assert.True(t, shouldRetry(log, errors.New("connection reset")))
	assert.True(t, shouldRetry(log, ierr.NewError("db down").Mark(ierr.ErrDatabase)))
}

func TestRouter_DeliversMessages(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log := logger.NewNoop()

	r, err := NewRouter(cfg, log, sentry.NewSentryService(cfg, log))
	require.NoError(t, err)

	ps := memory.NewPubSub(log)
	received := make(chan string, 1)
	r.AddNoPublishHandler("test_handler", "test.topic", ps, func(msg *message.Message) error {
		received <- string(msg.Payload)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = r.Run(ctx)
	}()
	<-r.Running()

	require.NoError(t, ps.Publish(ctx, "test.topic", message.NewMessage(watermill.NewUUID(), []byte("hello"))))

	select {
	case payload := <-received:
		assert.Equal(t, "hello", payload)
	case <-time.After(5 * time.Second):
		t.Fatal("message was not delivered")
	}

	require.NoError(t, r.Close())
}
