package repository

import (
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
	memoryRepo "github.com/hanahub/ab-discount-app/internal/repository/memory"
	postgresRepo "github.com/hanahub/ab-discount-app/internal/repository/postgres"
	"github.com/hanahub/ab-discount-app/internal/types"
	"go.uber.org/fx"
)

type RepositoryParams struct {
	fx.In

	Config *config.Configuration
	Logger *logger.Logger
	Cache  cache.Cache
	DB     *postgres.DB `optional:"true"`
}

// NewVariantDiscountRepository stores configurations in postgres, or in
// memory when running locally
func NewVariantDiscountRepository(p RepositoryParams) variantdiscount.Repository {
	if p.Config.Deployment.Mode == types.ModeLocal || p.DB == nil {
		p.Logger.Infow("using in-memory variant discount store", "mode", p.Config.Deployment.Mode)
		return memoryRepo.NewVariantDiscountRepository()
	}
	return postgresRepo.NewVariantDiscountRepository(p.DB, p.Logger, p.Cache)
}

// NewTransactor returns the database handle services use for transactions
func NewTransactor(p RepositoryParams) postgres.IClient {
	if p.Config.Deployment.Mode == types.ModeLocal || p.DB == nil {
		return postgres.NewNoopClient()
	}
	return p.DB
}
