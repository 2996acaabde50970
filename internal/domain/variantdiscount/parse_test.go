package variantdiscount

import (
	stdjson "encoding/json"
	"testing"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     map[string]string
		wantErr  bool
		errCheck func(error) bool
	}{
		{
			name: "two variants",
			raw:  `{"variantDiscounts":{"gid://shopify/ProductVariant/1":20,"gid://shopify/ProductVariant/2":15}}`,
			want: map[string]string{
				"gid://shopify/ProductVariant/1": "20",
				"gid://shopify/ProductVariant/2": "15",
			},
		},
		{
			name: "fractional percentage",
			raw:  `{"variantDiscounts":{"v1":12.5}}`,
			want: map[string]string{"v1": "12.5"},
		},
		{
			name: "non positive and non numeric entries are dropped",
			raw:  `{"variantDiscounts":{"v1":0,"v2":-5,"v3":"10","v4":null,"v5":true,"v6":{"x":1},"v7":30}}`,
			want: map[string]string{"v7": "30"},
		},
		{
			name: "missing variantDiscounts",
			raw:  `{"other":1}`,
			want: map[string]string{},
		},
		{
			name: "null variantDiscounts",
			raw:  `{"variantDiscounts":null}`,
			want: map[string]string{},
		},
		{
			name: "null variantDiscounts with whitespace",
			raw:  `{ "variantDiscounts" : null }`,
			want: map[string]string{},
		},
		{
			name: "empty blob",
			raw:  "   ",
			want: map[string]string{},
		},
		{
			name:     "malformed json",
			raw:      `{"variantDiscounts":`,
			wantErr:  true,
			errCheck: ierr.IsParse,
		},
		{
			name:     "top level array",
			raw:      `[1,2,3]`,
			wantErr:  true,
			errCheck: ierr.IsParse,
		},
		{
			name:     "top level null",
			raw:      `null`,
			wantErr:  true,
			errCheck: ierr.IsParse,
		},
		{
			name:     "variantDiscounts is a list",
			raw:      `{"variantDiscounts":[20,15]}`,
			wantErr:  true,
			errCheck: ierr.IsParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				return
			}

			require.NoError(t, err)
			require.Len(t, cfg.VariantDiscounts, len(tt.want))
			for variantID, expected := range tt.want {
				assert.True(t, decimal.RequireFromString(expected).Equal(cfg.PercentageFor(variantID)),
					"variant %s: expected %s, got %s", variantID, expected, cfg.PercentageFor(variantID))
			}
		})
	}
}

func TestFromSubmittedValues(t *testing.T) {
	values := map[string]stdjson.RawMessage{
		"v1": stdjson.RawMessage(`20`),
		"v2": stdjson.RawMessage(`"15.5"`),
		"v3": stdjson.RawMessage(`""`),
		"v4": stdjson.RawMessage(`"0"`),
		"v5": stdjson.RawMessage(`"abc"`),
		"v6": stdjson.RawMessage(`-3`),
		"v7": stdjson.RawMessage(`" 7 "`),
		"v8": stdjson.RawMessage(`null`),
	}

	cfg := FromSubmittedValues(values)

	assert.Equal(t, []string{"v1", "v2", "v7"}, cfg.VariantIDs())
	assert.True(t, decimal.NewFromInt(20).Equal(cfg.PercentageFor("v1")))
	assert.True(t, decimal.RequireFromString("15.5").Equal(cfg.PercentageFor("v2")))
	assert.True(t, decimal.NewFromInt(7).Equal(cfg.PercentageFor("v7")))
}

func TestSerialize(t *testing.T) {
	cfg := NewConfiguration(map[string]decimal.Decimal{
		"b": decimal.NewFromInt(15),
		"a": decimal.RequireFromString("12.5"),
	})

	out, err := cfg.Serialize()
	require.NoError(t, err)
	assert.Equal(t, `{"variantDiscounts":{"a":12.5,"b":15}}`, out)

	empty, err := NewConfiguration(nil).Serialize()
	require.NoError(t, err)
	assert.Equal(t, `{"variantDiscounts":{}}`, empty)
}

func TestConfiguration(t *testing.T) {
	cfg := NewConfiguration(map[string]decimal.Decimal{
		"v1": decimal.NewFromInt(10),
		"v2": decimal.Zero,
		"v3": decimal.NewFromInt(-1),
	})

	assert.Equal(t, 1, cfg.Len())
	assert.False(t, cfg.IsEmpty())
	assert.True(t, cfg.PercentageFor("v2").IsZero())
	assert.True(t, cfg.PercentageFor("unknown").IsZero())
	assert.True(t, NewConfiguration(nil).IsEmpty())
}
