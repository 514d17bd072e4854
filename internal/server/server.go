package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/garrettladley/shop0/internal/server/handler"
	"github.com/garrettladley/shop0/internal/service/webhook"
	"github.com/garrettladley/shop0/internal/xhttp/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// NewHandler routes every non-health path to the webhook handler, which
// answers 404 for paths no topic is registered on.
func NewHandler(service webhook.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", handler.NewWebhook(service).HandleWebhook)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.Recovery,
	)
}

func New(addr string, service webhook.Service, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(service, logger),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
