package xhttp

import (
	"net/http"
	"strings"
)

const (
	ContentType   = "Content-Type"
	ContentLength = "Content-Length"
	UserAgent     = "User-Agent"
	RetryAfter    = "Retry-After"
	XRequestID    = "X-Request-Id"
)

// Headers set or read on shop0 admin API calls and webhook deliveries.
const (
	Shop0AccessToken       = "X-Shop0-Access-Token"
	Shop0APIDeprecatedNote = "X-Shop0-API-Deprecated-Reason"
	Shop0APICallLimit      = "X-Shop0-Shop-Api-Call-Limit"
	Shop0Hmac              = "X-Shop0-Hmac-Sha256"
	Shop0Topic             = "X-Shop0-Topic"
	Shop0ShopDomain        = "X-Shop0-Shop-Domain"
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

// HeaderValue looks key up case-insensitively, including non-canonical keys
// that were assigned to the map directly.
func HeaderValue(h http.Header, key string) string {
	if v := h.Get(key); v != "" {
		return v
	}
	for existing, values := range h {
		if strings.EqualFold(existing, key) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
