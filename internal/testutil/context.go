package testutil

import (
	"context"

	"github.com/hanahub/ab-discount-app/internal/types"
)

const DefaultShopID = "shop_test"

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxShopID, DefaultShopID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
