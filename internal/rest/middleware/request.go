package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanahub/ab-discount-app/internal/types"
)

// RequestIDMiddleware carries the caller's X-Request-ID, or a fresh one,
// through the request context and back in the response headers
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// ShopMiddleware puts the :shop_id route parameter, or the X-Shop-ID
// header, into the request context
func ShopMiddleware(c *gin.Context) {
	shopID := c.Param("shop_id")
	if shopID == "" {
		shopID = c.GetHeader(types.HeaderShopID)
	}

	if shopID != "" {
		ctx := types.SetShopID(c.Request.Context(), shopID)
		c.Request = c.Request.WithContext(ctx)
	}

	c.Next()
}
