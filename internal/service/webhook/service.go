package webhook

import (
	"context"
	"net/http"
)

// HandlerFunc receives a verified delivery. topic is already normalized
// (ORDERS_CREATE rather than orders/create) and body is the raw payload.
type HandlerFunc func(ctx context.Context, topic, shop string, body []byte) error

type Service interface {
	// Register makes sure the shop delivers topic to the given path and, once
	// the platform confirms, routes deliveries for topic to the handler.
	// A subscription already pointing at the target is left untouched.
	// Registering the same topic concurrently is unsupported: both calls may
	// create a subscription and the last one to finish owns the local entry.
	Register(ctx context.Context, opts RegisterOptions) (RegisterResult, error)

	// RegisterAll registers distinct topics concurrently.
	// Returns an InvalidConfiguration error if a topic appears twice.
	RegisterAll(ctx context.Context, opts []RegisterOptions) ([]RegisterResult, error)

	// Process verifies and dispatches one delivery. It always writes exactly
	// one status to w before returning; the returned error is for logging.
	Process(w http.ResponseWriter, r *http.Request) error

	// IsWebhookPath reports whether some registered topic is delivered to path.
	IsWebhookPath(path string) bool
}
