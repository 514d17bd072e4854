package webhook

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/garrettladley/shop0/internal/client/shop0"
	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/signature"
)

type entry struct {
	path    string
	topic   string
	handler HandlerFunc
}

// Registry holds at most one handler per topic. It is safe for concurrent use.
type Registry struct {
	secret     string
	hostName   string
	apiVersion config.APIVersion

	newClient ClientFactory
	logger    *slog.Logger
	signBody  func(secret string, body []byte) string

	mu      sync.RWMutex
	entries map[string]entry
}

var _ Service = (*Registry)(nil)

type registryConfig struct {
	newClient     ClientFactory
	clientOptions []shop0.Option
	logger        *slog.Logger
}

type Option func(*registryConfig)

// WithClientFactory replaces how the registry reaches the GraphQL API.
func WithClientFactory(f ClientFactory) Option {
	return func(cfg *registryConfig) { cfg.newClient = f }
}

// WithClientOptions is passed to every GraphQL client the default factory builds.
func WithClientOptions(opts ...shop0.Option) Option {
	return func(cfg *registryConfig) { cfg.clientOptions = append(cfg.clientOptions, opts...) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *registryConfig) { cfg.logger = logger }
}

func NewRegistry(cfg config.Config, opts ...Option) *Registry {
	rc := &registryConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.newClient == nil {
		rc.newClient = graphQLClientFactory(cfg, rc.clientOptions...)
	}

	return &Registry{
		secret:     cfg.APISecretKey,
		hostName:   cfg.HostName,
		apiVersion: cfg.APIVersion,
		newClient:  rc.newClient,
		logger:     rc.logger,
		signBody:   signature.SignBase64,
		entries:    make(map[string]entry),
	}
}

func (r *Registry) IsWebhookPath(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.path == path {
			return true
		}
	}
	return false
}

// Topics lists the registered topics in order.
func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.entries))
}

func (r *Registry) lookup(topic string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[topic]
	return e, ok
}

// commit replaces any entry for e.topic.
func (r *Registry) commit(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[e.topic] = e
}
