package testutil

import (
	"context"
	"sync/atomic"

	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs transactional functions inline and counts them
type MockPostgresClient struct {
	logger *logger.Logger
	txs    atomic.Int32
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txs.Add(1)
	if err := fn(ctx); err != nil {
		c.logger.Debugw("mock transaction rolled back", "error", err)
		return err
	}
	return nil
}

// TxCount returns how many transactions were started
func (c *MockPostgresClient) TxCount() int {
	return int(c.txs.Load())
}
