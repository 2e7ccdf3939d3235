package globals

import (
	"context"

	"achrip/internal/app"
	"achrip/internal/components/telemetry"
)

type keyType struct{}

var key keyType

type Value struct {
	Config   app.Config
	Tel      telemetry.API
	Progress telemetry.Progress
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key).(*Value)
}
