package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const uniqueViolation = "23505"

type variantDiscountRepository struct {
	db    *postgres.DB
	log   *logger.Logger
	cache cache.Cache
}

func NewVariantDiscountRepository(db *postgres.DB, log *logger.Logger, cache cache.Cache) variantdiscount.Repository {
	return &variantDiscountRepository{
		db:    db,
		log:   log,
		cache: cache,
	}
}

// row mirrors the function_configurations table
type row struct {
	ID              string         `db:"id"`
	ShopID          string         `db:"shop_id"`
	Namespace       string         `db:"namespace"`
	Key             string         `db:"key"`
	ValueType       string         `db:"value_type"`
	Value           string         `db:"value"`
	DiscountTitle   string         `db:"discount_title"`
	DiscountClasses pq.StringArray `db:"discount_classes"`
	types.BaseModel
}

func (r row) toDomain() *variantdiscount.StoredConfiguration {
	return &variantdiscount.StoredConfiguration{
		ID:            r.ID,
		ShopID:        r.ShopID,
		Namespace:     r.Namespace,
		Key:           r.Key,
		ValueType:     r.ValueType,
		Value:         r.Value,
		DiscountTitle: r.DiscountTitle,
		DiscountClasses: lo.Map(r.DiscountClasses, func(c string, _ int) types.DiscountClass {
			return types.DiscountClass(c)
		}),
		BaseModel: r.BaseModel,
	}
}

func (r *variantDiscountRepository) Get(ctx context.Context, shopID string) (*variantdiscount.StoredConfiguration, error) {
	if cached := r.GetCache(ctx, shopID); cached != nil {
		return cached, nil
	}

	r.log.Debugw("getting variant discount configuration", "shop_id", shopID)

	query := `
	SELECT
		id, shop_id, namespace, key, value_type, value, discount_title, discount_classes,
		status, created_at, updated_at, created_by, updated_by
	FROM function_configurations
	WHERE shop_id = $1 AND namespace = $2 AND key = $3 AND status = $4
	`

	var result row
	err := r.db.GetQuerier(ctx).GetContext(ctx, &result, query,
		shopID,
		types.FunctionConfigurationNamespace,
		types.FunctionConfigurationKey,
		types.StatusPublished,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("No variant discount configuration for shop %s", shopID).
				WithReportableDetails(map[string]any{
					"shop_id": shopID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get variant discount configuration").
			Mark(ierr.ErrDatabase)
	}

	cfg := result.toDomain()
	r.SetCache(ctx, cfg)
	return cfg, nil
}

func (r *variantDiscountRepository) Create(ctx context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.log.Debugw("creating variant discount configuration",
		"configuration_id", cfg.ID,
		"shop_id", cfg.ShopID,
	)

	query := `
	INSERT INTO function_configurations (
		id, shop_id, namespace, key, value_type, value, discount_title, discount_classes,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)
	`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		cfg.ID,
		cfg.ShopID,
		cfg.Namespace,
		cfg.Key,
		cfg.ValueType,
		cfg.Value,
		cfg.DiscountTitle,
		pq.StringArray(lo.Map(cfg.DiscountClasses, func(c types.DiscountClass, _ int) string {
			return c.String()
		})),
		cfg.Status,
		cfg.CreatedAt,
		cfg.UpdatedAt,
		cfg.CreatedBy,
		cfg.UpdatedBy,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ierr.WithError(err).
				WithHint("A variant discount configuration already exists for this shop").
				WithReportableDetails(map[string]any{
					"shop_id": cfg.ShopID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create variant discount configuration").
			Mark(ierr.ErrDatabase)
	}

	r.DeleteCache(ctx, cfg.ShopID)
	return nil
}

func (r *variantDiscountRepository) Upsert(ctx context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.log.Debugw("upserting variant discount configuration",
		"configuration_id", cfg.ID,
		"shop_id", cfg.ShopID,
	)

	query := `
	INSERT INTO function_configurations (
		id, shop_id, namespace, key, value_type, value, discount_title, discount_classes,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)
	ON CONFLICT (shop_id, namespace, key) WHERE status = 'published'
	DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
	RETURNING id, created_at, created_by
	`

	err := r.db.GetQuerier(ctx).QueryRowContext(ctx, query,
		cfg.ID,
		cfg.ShopID,
		cfg.Namespace,
		cfg.Key,
		cfg.ValueType,
		cfg.Value,
		cfg.DiscountTitle,
		pq.StringArray(lo.Map(cfg.DiscountClasses, func(c types.DiscountClass, _ int) string {
			return c.String()
		})),
		cfg.Status,
		cfg.CreatedAt,
		cfg.UpdatedAt,
		cfg.CreatedBy,
		cfg.UpdatedBy,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.CreatedBy)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save variant discount configuration").
			WithReportableDetails(map[string]any{
				"shop_id": cfg.ShopID,
			}).
			Mark(ierr.ErrDatabase)
	}

	r.DeleteCache(ctx, cfg.ShopID)
	return nil
}

func (r *variantDiscountRepository) Update(ctx context.Context, cfg *variantdiscount.StoredConfiguration) error {
	r.log.Debugw("updating variant discount configuration",
		"configuration_id", cfg.ID,
		"shop_id", cfg.ShopID,
	)

	cfg.UpdatedAt = time.Now().UTC()
	cfg.UpdatedBy = types.GetUserID(ctx)

	query := `
	UPDATE function_configurations
	SET value = $1, updated_at = $2, updated_by = $3
	WHERE id = $4 AND shop_id = $5 AND status = $6
	`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		cfg.Value,
		cfg.UpdatedAt,
		cfg.UpdatedBy,
		cfg.ID,
		cfg.ShopID,
		types.StatusPublished,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update variant discount configuration").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update variant discount configuration").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewErrorf("configuration %s not found", cfg.ID).
			WithHintf("Variant discount configuration %s was not found", cfg.ID).
			WithReportableDetails(map[string]any{
				"configuration_id": cfg.ID,
				"shop_id":          cfg.ShopID,
			}).
			Mark(ierr.ErrNotFound)
	}

	r.DeleteCache(ctx, cfg.ShopID)
	return nil
}

func cacheKey(shopID string) string {
	return cache.GenerateKey(cache.PrefixVariantDiscounts, shopID)
}

func (r *variantDiscountRepository) GetCache(ctx context.Context, shopID string) *variantdiscount.StoredConfiguration {
	span := cache.StartCacheSpan(ctx, "variant_discounts", "get", map[string]interface{}{
		"shop_id": shopID,
	})
	defer cache.FinishSpan(span)

	if value, found := r.cache.Get(ctx, cacheKey(shopID)); found {
		if cfg, ok := value.(*variantdiscount.StoredConfiguration); ok {
			copied := *cfg
			return &copied
		}
	}
	return nil
}

func (r *variantDiscountRepository) SetCache(ctx context.Context, cfg *variantdiscount.StoredConfiguration) {
	span := cache.StartCacheSpan(ctx, "variant_discounts", "set", map[string]interface{}{
		"shop_id": cfg.ShopID,
	})
	defer cache.FinishSpan(span)

	copied := *cfg
	r.cache.Set(ctx, cacheKey(cfg.ShopID), &copied, 0)
}

func (r *variantDiscountRepository) DeleteCache(ctx context.Context, shopID string) {
	span := cache.StartCacheSpan(ctx, "variant_discounts", "delete", map[string]interface{}{
		"shop_id": shopID,
	})
	defer cache.FinishSpan(span)

	r.cache.Delete(ctx, cacheKey(shopID))
}
