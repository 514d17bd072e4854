package xhttp

import (
	"fmt"
	"net/http"
)

type shop0Transport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*shop0Transport)(nil)

func (t *shop0Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that asks the admin API for JSON.
func NewTransport() http.RoundTripper {
	return &shop0Transport{base: http.DefaultTransport}
}
