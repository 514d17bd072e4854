package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/service/webhook"
)

type stubService struct {
	path      string
	processed int
	err       error
}

var _ webhook.Service = (*stubService)(nil)

func (s *stubService) Register(context.Context, webhook.RegisterOptions) (webhook.RegisterResult, error) {
	return webhook.RegisterResult{}, nil
}

func (s *stubService) RegisterAll(context.Context, []webhook.RegisterOptions) ([]webhook.RegisterResult, error) {
	return nil, nil
}

func (s *stubService) Process(w http.ResponseWriter, _ *http.Request) error {
	s.processed++
	apperr.WriteStatus(w, s.err)
	return s.err
}

func (s *stubService) IsWebhookPath(path string) bool { return path == s.path }

func TestHandleWebhook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		err           error
		wantStatus    int
		wantProcessed int
	}{
		{name: "delivered", method: http.MethodPost, path: "/webhooks", wantStatus: http.StatusOK, wantProcessed: 1},
		{name: "rejected", method: http.MethodPost, path: "/webhooks", err: apperr.SignatureMismatch("bad"), wantStatus: http.StatusForbidden, wantProcessed: 1},
		{name: "handler failed", method: http.MethodPost, path: "/webhooks", err: apperr.HandlerFailed("ORDERS_CREATE", context.Canceled), wantStatus: http.StatusInternalServerError, wantProcessed: 1},
		{name: "unknown path", method: http.MethodPost, path: "/other", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/webhooks", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubService{path: "/webhooks", err: tt.err}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"id":1}`))

			NewWebhook(svc).HandleWebhook(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if svc.processed != tt.wantProcessed {
				t.Errorf("processed = %d, want %d", svc.processed, tt.wantProcessed)
			}
		})
	}
}
