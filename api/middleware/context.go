package middleware

import "context"

type contextKey string

const (
	ctxCartID    contextKey = "cart_id"
	ctxRequestID contextKey = "request_id"
)

func CartIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxCartID)
}

// WithCartID injects the cart identifier into the context for downstream handlers.
func WithCartID(ctx context.Context, cartID string) context.Context {
	return withString(ctx, ctxCartID, cartID)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRequestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, ctxRequestID, requestID)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}
