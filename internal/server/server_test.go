package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/service/webhook"
	"github.com/garrettladley/shop0/internal/xhttp"
)

func TestNewHandlerRoutes(t *testing.T) {
	t.Parallel()

	registry := webhook.NewRegistry(config.Config{APISecretKey: "secret", HostName: "app.example.com", APIVersion: config.APIVersionUnstable})
	h := NewHandler(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(xhttp.XRequestID) == "" {
		t.Error("GET /healthz response has no request id")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/webhooks", strings.NewReader(`{"id":1}`))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /webhooks error = %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("POST /webhooks before registering status = %d, want 404", resp.StatusCode)
	}
}
