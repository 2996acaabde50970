package variantdiscount

import "context"

// Repository persists one stored configuration per shop
type Repository interface {
	// Get returns the shop's configuration or an error marked ierr.ErrNotFound
	Get(ctx context.Context, shopID string) (*StoredConfiguration, error)
	Create(ctx context.Context, cfg *StoredConfiguration) error
	// Update replaces the stored value of an existing configuration
	Update(ctx context.Context, cfg *StoredConfiguration) error
	// Upsert creates the shop's configuration or, when one already exists,
	// overwrites its value. cfg is refreshed with the stored id and audit
	// fields, so concurrent first saves resolve to the last writer.
	Upsert(ctx context.Context, cfg *StoredConfiguration) error
}
