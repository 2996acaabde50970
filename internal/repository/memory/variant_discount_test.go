package memory

import (
	"context"
	"testing"

	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantDiscountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVariantDiscountRepository()

	_, err := repo.Get(ctx, "shop_1")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	cfg := &variantdiscount.StoredConfiguration{
		ID:        "fncfg_1",
		ShopID:    "shop_1",
		Namespace: types.FunctionConfigurationNamespace,
		Key:       types.FunctionConfigurationKey,
		Value:     `{"variantDiscounts":{"v1":20}}`,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	require.NoError(t, repo.Create(ctx, cfg))

	err = repo.Create(ctx, cfg)
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))

	got, err := repo.Get(ctx, "shop_1")
	require.NoError(t, err)
	assert.Equal(t, cfg.Value, got.Value)

	got.Value = `{"variantDiscounts":{"v1":30}}`
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, "shop_1")
	require.NoError(t, err)
	assert.Equal(t, `{"variantDiscounts":{"v1":30}}`, updated.Value)

	err = repo.Update(ctx, &variantdiscount.StoredConfiguration{ID: "fncfg_other", ShopID: "shop_1"})
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	repo.Clear()
	_, err = repo.Get(ctx, "shop_1")
	assert.True(t, ierr.IsNotFound(err))
}

func TestVariantDiscountRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewVariantDiscountRepository()

	first := &variantdiscount.StoredConfiguration{
		ID:        "fncfg_1",
		ShopID:    "shop_1",
		Value:     `{"variantDiscounts":{"v1":20}}`,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &variantdiscount.StoredConfiguration{
		ID:        "fncfg_2",
		ShopID:    "shop_1",
		Value:     `{"variantDiscounts":{"v1":30}}`,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, "fncfg_1", second.ID)

	got, err := repo.Get(ctx, "shop_1")
	require.NoError(t, err)
	assert.Equal(t, "fncfg_1", got.ID)
	assert.Equal(t, `{"variantDiscounts":{"v1":30}}`, got.Value)
}
