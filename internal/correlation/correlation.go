package correlation

import (
	"context"

	"github.com/google/uuid"
)

type key int

const correlationKey key = 0

// NewRunContext tags ctx with a fresh correlation id for one pipeline run.
func NewRunContext(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return context.WithValue(ctx, correlationKey, id), id
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

func ID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationKey).(string); ok {
		return id
	}
	return "unknown"
}
