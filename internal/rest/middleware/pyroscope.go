package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hanahub/ab-discount-app/internal/pyroscope"
)

// PyroscopeMiddleware labels the profiles collected while a request runs
// with its route, so hot endpoints show up separately
func PyroscopeMiddleware(svc *pyroscope.Service) gin.HandlerFunc {
	if svc == nil || !svc.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := map[string]string{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}

		svc.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
