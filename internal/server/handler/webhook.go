package handler

import (
	"net/http"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/service/webhook"
	"github.com/garrettladley/shop0/internal/xhttp"
	"github.com/garrettladley/shop0/internal/xslog"
)

type Webhook struct {
	service webhook.Service
}

func NewWebhook(service webhook.Service) *Webhook {
	return &Webhook{service: service}
}

// HandleWebhook serves POST deliveries on registered webhook paths. The
// registry writes the status; this only decides how loudly to log it.
func (h *Webhook) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.service.IsWebhookPath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := xslog.WithAttrs(r.Context(),
		xslog.Path(r.URL.Path),
		xslog.Topic(xhttp.HeaderValue(r.Header, xhttp.Shop0Topic)),
		xslog.Shop(xhttp.HeaderValue(r.Header, xhttp.Shop0ShopDomain)),
	)
	logger := xslog.FromContext(ctx)

	err := h.service.Process(w, r.WithContext(ctx))
	if err == nil {
		logger.InfoContext(ctx, "processed webhook")
		return
	}

	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "webhook handler failed", xslog.HTTPStatus(status), xslog.ErrorGroup(err))
		return
	}
	logger.WarnContext(ctx, "rejected webhook delivery", xslog.HTTPStatus(status), xslog.ErrorGroup(err))
}
