package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineProductVariant(t *testing.T) {
	variant := &ProductVariant{ID: "gid://shopify/ProductVariant/1", Product: Product{ID: "gid://shopify/Product/1"}}

	tests := []struct {
		name   string
		line   Line
		wantOK bool
	}{
		{name: "product variant", line: Line{ID: "l1", Merchandise: variant}, wantOK: true},
		{name: "custom product", line: Line{ID: "l2", Merchandise: &CustomProduct{Title: "Gift wrap"}}},
		{name: "no merchandise", line: Line{ID: "l3"}},
		{name: "typed nil variant", line: Line{ID: "l4", Merchandise: (*ProductVariant)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.line.ProductVariant()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, variant, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}
