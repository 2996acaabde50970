package variantdiscount

import (
	"context"
	"testing"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	errs    []error
	details []map[string]interface{}
}

func (r *recordingReporter) ReportParseError(_ context.Context, err error, details map[string]interface{}) {
	r.errs = append(r.errs, err)
	r.details = append(r.details, details)
}

func TestDecoder_Decode(t *testing.T) {
	ctx := types.SetShopID(context.Background(), "shop_1")

	t.Run("valid blob is decoded without reporting", func(t *testing.T) {
		reporter := &recordingReporter{}
		decoder := NewDecoder(logger.NewNoop(), reporter)

		cfg := decoder.Decode(ctx, `{"variantDiscounts":{"v1":20}}`)

		assert.Equal(t, 1, cfg.Len())
		assert.Empty(t, reporter.errs)
	})

	t.Run("documents without discounts read as empty without reporting", func(t *testing.T) {
		for _, raw := range []string{``, `{}`, `{"variantDiscounts":null}`, `{"variantDiscounts": null }`} {
			reporter := &recordingReporter{}
			decoder := NewDecoder(logger.NewNoop(), reporter)

			cfg := decoder.Decode(ctx, raw)

			assert.True(t, cfg.IsEmpty(), raw)
			assert.Empty(t, reporter.errs, raw)
		}
	})

	t.Run("unreadable blob reads as empty and is reported", func(t *testing.T) {
		reporter := &recordingReporter{}
		decoder := NewDecoder(logger.NewNoop(), reporter)

		cfg := decoder.Decode(ctx, `not json`)

		assert.True(t, cfg.IsEmpty())
		require.Len(t, reporter.errs, 1)
		assert.True(t, ierr.IsParse(reporter.errs[0]))
		assert.Equal(t, "shop_1", reporter.details[0]["shop_id"])
	})

	t.Run("nil reporter is tolerated", func(t *testing.T) {
		decoder := NewDecoder(logger.NewNoop(), nil)
		assert.True(t, decoder.Decode(ctx, `[]`).IsEmpty())
	})
}
