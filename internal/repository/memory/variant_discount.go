package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/types"
)

// VariantDiscountRepository keeps configurations in process memory. It backs
// local mode and the service tests.
type VariantDiscountRepository struct {
	mu     sync.RWMutex
	byShop map[string]*variantdiscount.StoredConfiguration
}

var _ variantdiscount.Repository = (*VariantDiscountRepository)(nil)

func NewVariantDiscountRepository() *VariantDiscountRepository {
	return &VariantDiscountRepository{
		byShop: make(map[string]*variantdiscount.StoredConfiguration),
	}
}

func (r *VariantDiscountRepository) Get(_ context.Context, shopID string) (*variantdiscount.StoredConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.byShop[shopID]
	if !ok || cfg.Status != types.StatusPublished {
		return nil, ierr.NewErrorf("configuration for shop %s not found", shopID).
			WithHintf("No variant discount configuration for shop %s", shopID).
			WithReportableDetails(map[string]any{
				"shop_id": shopID,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *cfg
	return &copied, nil
}

func (r *VariantDiscountRepository) Create(_ context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byShop[cfg.ShopID]; ok && existing.Status == types.StatusPublished {
		return ierr.NewErrorf("configuration for shop %s already exists", cfg.ShopID).
			WithHint("A variant discount configuration already exists for this shop").
			Mark(ierr.ErrAlreadyExists)
	}

	copied := *cfg
	r.byShop[cfg.ShopID] = &copied
	return nil
}

func (r *VariantDiscountRepository) Upsert(_ context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byShop[cfg.ShopID]; ok && existing.Status == types.StatusPublished {
		existing.Value = cfg.Value
		existing.UpdatedAt = cfg.UpdatedAt
		existing.UpdatedBy = cfg.UpdatedBy
		*cfg = *existing
		return nil
	}

	copied := *cfg
	r.byShop[cfg.ShopID] = &copied
	return nil
}

func (r *VariantDiscountRepository) Update(ctx context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byShop[cfg.ShopID]
	if !ok || existing.ID != cfg.ID || existing.Status != types.StatusPublished {
		return ierr.NewErrorf("configuration %s not found", cfg.ID).
			WithHintf("Variant discount configuration %s was not found", cfg.ID).
			Mark(ierr.ErrNotFound)
	}

	cfg.UpdatedAt = time.Now().UTC()
	cfg.UpdatedBy = types.GetUserID(ctx)
	existing.Value = cfg.Value
	existing.UpdatedAt = cfg.UpdatedAt
	existing.UpdatedBy = cfg.UpdatedBy
	return nil
}

// Clear drops every stored configuration
func (r *VariantDiscountRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byShop = make(map[string]*variantdiscount.StoredConfiguration)
}
