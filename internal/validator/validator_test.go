package validator

import (
	"testing"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classesRequest struct {
	ShopID  string                `validate:"required"`
	Classes []types.DiscountClass `validate:"dive,discount_class"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	tests := []struct {
		name    string
		req     classesRequest
		wantErr bool
	}{
		{
			name: "valid classes",
			req: classesRequest{
				ShopID:  "shop.myshopify.com",
				Classes: []types.DiscountClass{types.DiscountClassProduct, types.DiscountClassOrder},
			},
		},
		{
			name:    "missing shop",
			req:     classesRequest{Classes: []types.DiscountClass{types.DiscountClassProduct}},
			wantErr: true,
		},
		{
			name: "unknown class",
			req: classesRequest{
				ShopID:  "shop.myshopify.com",
				Classes: []types.DiscountClass{"DELIVERY"},
			},
			wantErr: true,
		},
		{
			name: "no classes",
			req:  classesRequest{ShopID: "shop.myshopify.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
