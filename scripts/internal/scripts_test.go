package internal

import (
	"testing"
	"time"

	"github.com/hanahub/ab-discount-app/internal/api/dto"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSaveRequest(t *testing.T) {
	for i := 0; i < 20; i++ {
		req := randomSaveRequest()
		require.NoError(t, req.Validate())
		assert.LessOrEqual(t, len(req.VariantDiscounts), VARIANTS_PER_SHOP)

		// every seeded value survives the admin save path
		cfg := variantdiscount.FromSubmittedValues(req.VariantDiscounts)
		assert.Equal(t, len(req.VariantDiscounts), cfg.Len())
	}
}

func TestRandomRunRequest(t *testing.T) {
	req := randomRunRequest()
	require.NoError(t, req.Validate())
	assert.NotEmpty(t, req.Cart.Lines)
	assert.Equal(t, []types.DiscountClass{types.DiscountClassProduct}, req.Discount.DiscountClasses)

	body, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded dto.RunRequest
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, len(req.Cart.Lines), len(decoded.Cart.Lines))
	assert.Equal(t, string(types.MerchandiseTypeProductVariant), decoded.Cart.Lines[0].Merchandise.Typename)
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond}

	assert.Equal(t, time.Duration(0), percentile(nil, 0.5))
	assert.Equal(t, 3*time.Millisecond, percentile(sorted, 0.5))
	assert.Equal(t, 5*time.Millisecond, percentile(sorted, 1))
}
