package router

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
)

func shouldRetry(logger *logger.Logger, err error) bool {
	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Business logic errors (don't retry)
	if ierr.IsValidation(err) ||
		ierr.IsParse(err) ||
		ierr.IsNotFound(err) {
		logger.Debugw("non-retryable handler error", "error", err)
		return false
	}

	// By default, retry unknown errors
	return true
}
