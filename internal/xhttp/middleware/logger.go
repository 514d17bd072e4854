package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/shop0/internal/xcontext"
	"github.com/garrettladley/shop0/internal/xslog"
)

// Logger puts base into the request context, tagged with the request id
// when RequestID ran earlier in the chain.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id, ok := xcontext.GetRequestID(ctx); ok {
				ctx = xslog.WithLogger(ctx, base.With(xslog.RequestID(id)))
			} else {
				ctx = xslog.WithLogger(ctx, base)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
