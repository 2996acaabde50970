package internal

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/hanahub/ab-discount-app/internal/api/dto"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
	"github.com/sourcegraph/conc"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// retryLogger adapts the sugared logger to retryablehttp's leveled logger
type retryLogger struct {
	log *logger.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}

// RunLoad posts REQUEST_COUNT random carts against the seeded shops of a
// running API and reports latency percentiles
func RunLoad() error {
	requests, err := envInt("REQUEST_COUNT", DEFAULT_REQUEST_COUNT)
	if err != nil {
		return err
	}
	shopCount, err := envInt("SHOP_COUNT", DEFAULT_SHOP_COUNT)
	if err != nil {
		return err
	}
	baseURL := envString("BASE_URL", DEFAULT_BASE_URL)

	log, err := logger.NewLogger(config.GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.Logger = retryLogger{log: log}

	limiter := rate.NewLimiter(rate.Limit(REQUESTS_PER_SEC), 1)

	var (
		mu        sync.Mutex
		durations = make([]time.Duration, 0, requests)
		failures  int
		wg        conc.WaitGroup
		slots     = make(chan struct{}, MAX_CONCURRENCY)
	)

	log.Infow("starting load run", "requests", requests, "shops", shopCount, "base_url", baseURL)
	start := time.Now()

	for i := 0; i < requests; i++ {
		shopID := fmt.Sprintf("shop_seed_%d", rand.Intn(shopCount))
		slots <- struct{}{}
		wg.Go(func() {
			defer func() { <-slots }()

			took, err := sendRun(context.Background(), client, limiter, baseURL, shopID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				log.Warnw("run request failed", "shop_id", shopID, "error", err)
				return
			}
			durations = append(durations, took)
		})
	}
	wg.Wait()

	total := time.Since(start)
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	log.Infow("load run finished",
		"total_time", total,
		"succeeded", len(durations),
		"failed", failures,
		"p50", percentile(durations, 0.50),
		"p95", percentile(durations, 0.95),
		"p99", percentile(durations, 0.99),
		"requests_per_sec", float64(len(durations))/total.Seconds(),
	)
	return nil
}

func sendRun(
	ctx context.Context,
	client *retryablehttp.Client,
	limiter *rate.Limiter,
	baseURL, shopID string,
) (time.Duration, error) {
	if err := limiter.Wait(ctx); err != nil {
		return 0, err
	}

	body, err := json.Marshal(randomRunRequest())
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/v1/shops/%s/discount-function/run", baseURL, shopID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(types.HeaderRequestID, types.GenerateUUID())

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return time.Since(start), nil
}

func randomRunRequest() *dto.RunRequest {
	n := rand.Intn(5) + 1
	lines := make([]dto.CartLineInput, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, dto.CartLineInput{
			ID:       fmt.Sprintf("gid://shopify/CartLine/%d", i+1),
			Quantity: rand.Intn(3) + 1,
			Merchandise: dto.MerchandiseInput{
				Typename: string(types.MerchandiseTypeProductVariant),
				ID:       variantGID(rand.Intn(VARIANTS_PER_SHOP) + 1),
				Product:  &dto.ProductInput{ID: "gid://shopify/Product/1"},
			},
		})
	}

	return &dto.RunRequest{
		Cart: dto.CartInput{Lines: lines},
		Discount: dto.DiscountInput{
			DiscountClasses: []types.DiscountClass{types.DiscountClassProduct},
		},
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
