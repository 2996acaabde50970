package internal

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hanahub/ab-discount-app/internal/api/dto"
	"github.com/hanahub/ab-discount-app/internal/cache"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/eventbus/publisher"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/postgres"
	"github.com/hanahub/ab-discount-app/internal/pubsub/memory"
	"github.com/hanahub/ab-discount-app/internal/repository"
	"github.com/hanahub/ab-discount-app/internal/service"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

// SeedVariantDiscounts saves a random configuration for SHOP_COUNT shops
// through the regular save path
func SeedVariantDiscounts() error {
	shopCount, err := envInt("SHOP_COUNT", DEFAULT_SHOP_COUNT)
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	repoParams := repository.RepositoryParams{
		Config: cfg,
		Logger: log,
		Cache:  cache.Initialize(cfg, log),
		DB:     db,
	}

	// events are only useful to running servers, keep them in process
	svc := service.NewVariantDiscountService(service.NewServiceParams(
		log,
		cfg,
		repository.NewTransactor(repoParams),
		repository.NewVariantDiscountRepository(repoParams),
		publisher.NewPublisher(memory.NewPubSub(log), cfg, log),
		service.NewDecoder(log, nil),
		service.NewEvaluator(cfg),
	))

	log.Infow("seeding variant discounts",
		"shops", shopCount,
		"variants_per_shop", VARIANTS_PER_SHOP,
		"rate", REQUESTS_PER_SEC,
	)

	limiter := rate.NewLimiter(rate.Limit(REQUESTS_PER_SEC), 1)
	p := pool.New().WithErrors().WithMaxGoroutines(MAX_CONCURRENCY)
	var saved atomic.Int64
	start := time.Now()

	for i := 0; i < shopCount; i++ {
		shopID := fmt.Sprintf("shop_seed_%d", i)
		p.Go(func() error {
			ctx := types.SetShopID(context.Background(), shopID)
			ctx = types.SetRequestID(ctx, types.GenerateUUID())
			if err := limiter.Wait(ctx); err != nil {
				return err
			}

			if _, err := svc.SaveVariantDiscounts(ctx, shopID, randomSaveRequest()); err != nil {
				return fmt.Errorf("shop %s: %w", shopID, err)
			}
			saved.Add(1)
			return nil
		})
	}

	err = p.Wait()
	log.Infow("variant discount seeding finished",
		"saved", saved.Load(),
		"failed", int64(shopCount)-saved.Load(),
		"duration", time.Since(start),
	)
	return err
}

func randomSaveRequest() *dto.SaveVariantDiscountsRequest {
	req := &dto.SaveVariantDiscountsRequest{
		VariantDiscounts: make(map[string]stdjson.RawMessage, VARIANTS_PER_SHOP),
	}
	for v := 1; v <= VARIANTS_PER_SHOP; v++ {
		// leave some variants without a discount
		if rand.Intn(4) == 0 {
			continue
		}
		req.VariantDiscounts[variantGID(v)] = stdjson.RawMessage(strconv.FormatFloat(randomPercentage(), 'f', -1, 64))
	}
	return req
}
