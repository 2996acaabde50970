package middleware

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/types"
)

// SentryMiddleware returns a middleware that captures panics and tags the
// request scope with the request and shop ids
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware must run after RequestIDMiddleware and ShopMiddleware
func SentryScopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Sentry.Enabled {
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				ctx := c.Request.Context()
				hub.ConfigureScope(func(scope *sentrygo.Scope) {
					scope.SetTag("request_id", types.GetRequestID(ctx))
					if shopID := types.GetShopID(ctx); shopID != "" {
						scope.SetTag("shop_id", shopID)
					}
				})
			}
		}
		c.Next()
	}
}
