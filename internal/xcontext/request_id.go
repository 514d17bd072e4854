// Package xcontext holds request-scoped values shared by middleware and logging.
package xcontext

import "context"

type requestIDKey struct{}

// SetRequestID tags ctx with the id echoed in X-Request-Id.
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	return requestID, ok && requestID != ""
}
