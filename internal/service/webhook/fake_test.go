package webhook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/shop0/internal/client/shop0"
	"github.com/garrettladley/shop0/internal/config"
)

var (
	checkTopicPattern     = regexp.MustCompile(`topics: (\w+)`)
	mutationNamePattern   = regexp.MustCompile(`(\w+)\((?:topic: (\w+)|id: "([^"]+)")`)
	mutationTargetPattern = regexp.MustCompile(`(?:callbackUrl|arn): "([^"]*)"`)
)

type subscription struct {
	id      string
	address string
}

// fakePlatform answers webhook subscription queries and mutations from memory.
type fakePlatform struct {
	mu            sync.Mutex
	subscriptions map[string]subscription
	queries       []string
	mutations     int
	reject        bool
	err           error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{subscriptions: make(map[string]subscription)}
}

func (p *fakePlatform) Query(_ context.Context, query shop0.GraphQLQuery) (*shop0.Response, error) {
	data, _ := query.Data.(string)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.queries = append(p.queries, data)
	if p.err != nil {
		return nil, p.err
	}

	if strings.HasPrefix(data, "mutation") {
		return p.mutate(data)
	}
	return p.check(data)
}

func (p *fakePlatform) check(data string) (*shop0.Response, error) {
	topic := checkTopicPattern.FindStringSubmatch(data)[1]

	edges := []any{}
	if sub, ok := p.subscriptions[topic]; ok {
		node := map[string]any{"id": sub.id}
		switch {
		case !strings.Contains(data, "endpoint"):
			node["callbackUrl"] = sub.address
		case strings.HasPrefix(sub.address, "arn:"):
			node["endpoint"] = map[string]any{"__typename": eventBridgeEndpointType, "arn": sub.address}
		default:
			node["endpoint"] = map[string]any{"__typename": httpEndpointType, "callbackUrl": sub.address}
		}
		edges = append(edges, map[string]any{"node": node})
	}

	return fakeResponse(map[string]any{
		"data": map[string]any{"webhookSubscriptions": map[string]any{"edges": edges}},
	})
}

func (p *fakePlatform) mutate(data string) (*shop0.Response, error) {
	p.mutations++

	match := mutationNamePattern.FindStringSubmatch(data)
	name, topic, id := match[1], match[2], match[3]
	if id != "" {
		for t, sub := range p.subscriptions {
			if sub.id == id {
				topic = t
			}
		}
	}
	target := mutationTargetPattern.FindStringSubmatch(data)[1]

	if p.reject {
		return fakeResponse(map[string]any{
			"data": map[string]any{name: map[string]any{
				"userErrors":          []any{map[string]any{"field": []string{"webhookSubscription", "callbackUrl"}, "message": "Address is invalid"}},
				"webhookSubscription": nil,
			}},
		})
	}

	if id == "" {
		id = fmt.Sprintf("gid://shop0/WebhookSubscription/%d", len(p.subscriptions)+1)
	}
	p.subscriptions[topic] = subscription{id: id, address: target}

	return fakeResponse(map[string]any{
		"data": map[string]any{name: map[string]any{
			"userErrors":          []any{},
			"webhookSubscription": map[string]any{"id": id},
		}},
	})
}

func (p *fakePlatform) snapshot() ([]string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...), p.mutations
}

func fakeResponse(v any) (*shop0.Response, error) {
	raw, err := go_json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var body any
	if err := go_json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return &shop0.Response{Body: body, Raw: raw}, nil
}

func testConfig(version config.APIVersion) config.Config {
	return config.Config{
		APIKey:       "key",
		APISecretKey: "secret",
		HostName:     "app.example.com",
		APIVersion:   version,
	}
}

func newTestRegistry(t *testing.T, version config.APIVersion, platform *fakePlatform) *Registry {
	t.Helper()
	return NewRegistry(testConfig(version),
		WithClientFactory(func(shop, accessToken string) (Querier, error) {
			if accessToken == "" {
				t.Errorf("client requested without an access token for %s", shop)
			}
			return platform, nil
		}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func noopHandler(context.Context, string, string, []byte) error { return nil }
