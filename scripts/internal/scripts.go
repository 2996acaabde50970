package internal

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

const (
	DEFAULT_SHOP_COUNT    = 50
	DEFAULT_REQUEST_COUNT = 1000
	DEFAULT_BASE_URL      = "http://localhost:8080"
	VARIANTS_PER_SHOP     = 20
	REQUESTS_PER_SEC      = 50
	MAX_CONCURRENCY       = 10
)

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return value, nil
}

func envString(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func variantGID(n int) string {
	return fmt.Sprintf("gid://shopify/ProductVariant/%d", n)
}

// randomPercentage returns one of the steps merchants usually pick
func randomPercentage() float64 {
	steps := []float64{5, 10, 12.5, 15, 20, 25, 30, 50}
	return steps[rand.Intn(len(steps))]
}
