package cache

import (
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
)

// Initialize builds the process-wide cache from the configuration
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("Initializing cache system",
		"enabled", cfg.Cache.Enabled,
		"expiration", cfg.Cache.Expiration,
	)
	return NewInMemoryCache(cfg)
}
