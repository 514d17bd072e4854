package shop0

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/xhttp"
	"github.com/garrettladley/shop0/internal/xslog"
)

// retryWaitTime is the pause between attempts when the upstream gave no Retry-After.
const retryWaitTime = time.Second

// Client executes admin API requests against a single shop.
// It holds no state besides the deprecation notices it has already logged.
type Client struct {
	domain          string
	baseURL         string
	httpClient      *http.Client
	logger          *slog.Logger
	userAgentPrefix string

	deprecations *deprecationCache
	sleep        func(ctx context.Context, d time.Duration) error
}

func New(domain string, opts ...Option) (*Client, error) {
	if !ValidShopDomain(domain) {
		return nil, apperr.InvalidConfiguration("domain %s is not valid", domain)
	}
	domain = strings.TrimRight(domain, "/")

	cfg := &clientConfig{
		baseURL: "https://" + domain,
		logger:  slog.Default(),
		timeout: xhttp.DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.timeout))
	}

	return &Client{
		domain:          domain,
		baseURL:         strings.TrimRight(cfg.baseURL, "/"),
		httpClient:      httpClient,
		logger:          cfg.logger,
		userAgentPrefix: cfg.userAgentPrefix,
		deprecations:    newDeprecationCache(cfg.now),
		sleep:           sleepContext,
	}, nil
}

type clientConfig struct {
	baseURL         string
	httpClient      *http.Client
	logger          *slog.Logger
	userAgentPrefix string
	timeout         time.Duration
	now             func() time.Time
}

type Option func(*clientConfig)

// WithBaseURL sends requests to baseURL instead of https://{domain}.
func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithUserAgentPrefix(prefix string) Option {
	return func(cfg *clientConfig) { cfg.userAgentPrefix = prefix }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func (c *Client) Domain() string { return c.domain }

func (c *Client) Get(ctx context.Context, spec RequestSpec) (*Response, error) {
	return c.Request(ctx, http.MethodGet, spec)
}

func (c *Client) Post(ctx context.Context, spec RequestSpec) (*Response, error) {
	return c.Request(ctx, http.MethodPost, spec)
}

func (c *Client) Put(ctx context.Context, spec RequestSpec) (*Response, error) {
	return c.Request(ctx, http.MethodPut, spec)
}

func (c *Client) Delete(ctx context.Context, spec RequestSpec) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, spec)
}

// Request performs spec with method, retrying throttled and 5xx responses
// until spec's retry budget is spent.
func (c *Client) Request(ctx context.Context, method string, spec RequestSpec) (*Response, error) {
	tries, err := spec.tries()
	if err != nil {
		return nil, err
	}

	body, contentType, err := spec.encodeBody(method)
	if err != nil {
		return nil, err
	}
	header := c.headers(spec, contentType, body != nil)
	url := c.baseURL + spec.Path
	if len(spec.Query) > 0 {
		url += "?" + spec.Query.Encode()
	}

	for attempt := 1; ; attempt++ {
		resp, failure := c.do(ctx, method, url, spec.Path, header, body)
		if failure == nil {
			return resp, nil
		}
		if !failure.Retriable() {
			return nil, failure
		}
		if attempt >= tries {
			// a single-try request surfaces the upstream failure untouched
			if tries > 1 {
				return nil, apperr.RetryBudgetExhausted(tries, failure)
			}
			return nil, failure
		}

		wait := retryWaitTime
		if failure.Kind == apperr.KindThrottled && failure.RetryAfter > 0 {
			wait = failure.RetryAfter
		}
		c.logger.DebugContext(ctx, "retrying shop0 request",
			xslog.Path(spec.Path),
			xslog.Attempt(attempt, tries),
			xslog.Wait(wait),
			xslog.Error(failure),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, apperr.TransportFailure(err)
		}
	}
}

// do runs a single attempt. Every failure comes back classified so the retry
// loop only has to look at the kind.
func (c *Client) do(ctx context.Context, method, url, path string, header http.Header, body []byte) (*Response, *apperr.Error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperr.TransportFailure(fmt.Errorf("creating request: %w", err))
	}
	req.Header = header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.TransportFailure(fmt.Errorf("executing request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.TransportFailure(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp, raw)
	}

	var decoded any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := go_json.Unmarshal(raw, &decoded); err != nil {
			return nil, apperr.TransportFailure(fmt.Errorf("decoding response: %w", err))
		}
	}

	c.noteDeprecation(ctx, resp.Header, path)

	callLimit, err := ParseCallLimit(resp.Header)
	if err != nil {
		c.logger.DebugContext(ctx, "ignoring malformed call limit header", xslog.Error(err))
	}

	return &Response{
		Body:      decoded,
		Raw:       raw,
		Headers:   resp.Header,
		CallLimit: callLimit,
	}, nil
}

func (c *Client) noteDeprecation(ctx context.Context, header http.Header, path string) {
	message := header.Get(xhttp.Shop0APIDeprecatedNote)
	if message == "" {
		return
	}
	if !c.deprecations.shouldLog(message, path) {
		return
	}
	c.logger.WarnContext(ctx, "API deprecation notice", xslog.Deprecation(message, path))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
