package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxShopID    ContextKey = "ctx_shop_id"
	CtxUserID    ContextKey = "ctx_user_id"

	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetShopID(ctx context.Context) string {
	if shopID, ok := ctx.Value(CtxShopID).(string); ok {
		return shopID
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

// SetShopID sets the shop ID in the context
func SetShopID(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, CtxShopID, shopID)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

const (
	HeaderRequestID = "X-Request-ID"
	HeaderShopID    = "X-Shop-ID"
)
