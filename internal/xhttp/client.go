package xhttp

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single admin API attempt; retries get a fresh budget.
const DefaultTimeout = 30 * time.Second

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

func WithBaseTransport(base http.RoundTripper) ClientOption {
	return func(c *http.Client) { c.Transport = &shop0Transport{base: base} }
}

func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport(), Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
