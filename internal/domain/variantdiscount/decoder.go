package variantdiscount

import (
	"context"

	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/types"
)

// ParseErrorReporter receives configuration parse errors that were absorbed
// instead of returned
type ParseErrorReporter interface {
	ReportParseError(ctx context.Context, err error, details map[string]interface{})
}

// Decoder turns the raw blob handed over by the platform into a
// Configuration and never fails: an unreadable blob is reported and read as
// "no discounts configured".
type Decoder struct {
	logger   *logger.Logger
	reporter ParseErrorReporter
}

func NewDecoder(logger *logger.Logger, reporter ParseErrorReporter) *Decoder {
	return &Decoder{
		logger:   logger,
		reporter: reporter,
	}
}

func (d *Decoder) Decode(ctx context.Context, raw string) Configuration {
	cfg, err := Parse(raw)
	if err == nil {
		return cfg
	}

	details := map[string]interface{}{
		"request_id": types.GetRequestID(ctx),
		"shop_id":    types.GetShopID(ctx),
		"raw_length": len(raw),
	}
	d.logger.Warnw("discarding unreadable discount configuration",
		"error", err,
		"request_id", details["request_id"],
		"shop_id", details["shop_id"],
		"raw_length", details["raw_length"],
	)
	if d.reporter != nil {
		d.reporter.ReportParseError(ctx, err, details)
	}

	return NewConfiguration(nil)
}
