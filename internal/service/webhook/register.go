package webhook

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/client/shop0"
	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/xslog"
)

type DeliveryMethod string

const (
	DeliveryMethodHTTP        DeliveryMethod = "http"
	DeliveryMethodEventBridge DeliveryMethod = "eventbridge"
)

// Querier is the part of the GraphQL client registration needs.
type Querier interface {
	Query(ctx context.Context, query shop0.GraphQLQuery) (*shop0.Response, error)
}

// ClientFactory returns a GraphQL client for shop authenticated with accessToken.
type ClientFactory func(shop, accessToken string) (Querier, error)

func graphQLClientFactory(cfg config.Config, opts ...shop0.Option) ClientFactory {
	return func(shop, accessToken string) (Querier, error) {
		return shop0.NewGraphQLClient(cfg, shop, accessToken, opts...)
	}
}

type RegisterOptions struct {
	// Path is the local callback path for HTTP delivery, or the event source
	// ARN for EventBridge delivery.
	Path  string
	Topic string

	AccessToken string
	Shop        string

	// DeliveryMethod defaults to HTTP.
	DeliveryMethod DeliveryMethod
	Handler        HandlerFunc
}

type RegisterResult struct {
	Success bool

	// Result is the decoded mutation response, or an empty object when no
	// mutation was needed.
	Result any

	UserErrors []UserError
}

func (r *Registry) Register(ctx context.Context, opts RegisterOptions) (RegisterResult, error) {
	method, err := r.validate(opts)
	if err != nil {
		return RegisterResult{}, err
	}

	client, err := r.newClient(opts.Shop, opts.AccessToken)
	if err != nil {
		return RegisterResult{}, err
	}

	address := r.address(opts.Path, method)
	logger := r.logger.With(xslog.Topic(opts.Topic), xslog.Shop(opts.Shop))

	check, err := client.Query(ctx, shop0.GraphQLQuery{Data: buildCheckQuery(opts.Topic, r.apiVersion)})
	if err != nil {
		return RegisterResult{}, err
	}
	existing, found, err := existingSubscription(check.Raw)
	if err != nil {
		return RegisterResult{}, apperr.TransportFailure(fmt.Errorf("decoding webhook subscriptions: %w", err))
	}

	if found && existing.address() == address {
		logger.DebugContext(ctx, "webhook subscription already up to date")
		r.commit(entry{path: opts.Path, topic: opts.Topic, handler: opts.Handler})
		return RegisterResult{Success: true, Result: map[string]any{}}, nil
	}

	query, m := buildMutation(opts.Topic, address, method, existing.ID)
	resp, err := client.Query(ctx, shop0.GraphQLQuery{Data: query})
	if err != nil {
		return RegisterResult{}, err
	}
	succeeded, userErrors, err := mutationOutcome(resp.Raw, m)
	if err != nil {
		return RegisterResult{}, apperr.TransportFailure(fmt.Errorf("decoding %s response: %w", m.name(), err))
	}

	result := RegisterResult{Success: succeeded, Result: resp.Body, UserErrors: userErrors}
	if !succeeded {
		logger.WarnContext(ctx, "webhook subscription mutation was rejected", xslog.Count(len(userErrors)))
		return result, nil
	}

	logger.InfoContext(ctx, "registered webhook subscription")
	r.commit(entry{path: opts.Path, topic: opts.Topic, handler: opts.Handler})
	return result, nil
}

// RegisterAll fails before any network call when a topic is repeated; the
// results line up with opts.
func (r *Registry) RegisterAll(ctx context.Context, opts []RegisterOptions) ([]RegisterResult, error) {
	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		if _, ok := seen[o.Topic]; ok {
			return nil, apperr.InvalidConfiguration("topic %s is registered more than once", o.Topic)
		}
		seen[o.Topic] = struct{}{}
	}

	results := make([]RegisterResult, len(opts))
	g, ctx := errgroup.WithContext(ctx)
	for i, o := range opts {
		g.Go(func() error {
			result, err := r.Register(ctx, o)
			if err != nil {
				return fmt.Errorf("registering %s: %w", o.Topic, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Registry) validate(opts RegisterOptions) (DeliveryMethod, error) {
	method := opts.DeliveryMethod
	if method == "" {
		method = DeliveryMethodHTTP
	}

	switch {
	case method != DeliveryMethodHTTP && method != DeliveryMethodEventBridge:
		return "", apperr.InvalidConfiguration("unknown delivery method %q", method)
	case method == DeliveryMethodEventBridge && !r.apiVersion.SupportsEndpointField():
		return "", apperr.InvalidConfiguration("EventBridge webhooks are not supported in API version %q", r.apiVersion)
	case opts.Topic == "":
		return "", apperr.InvalidConfiguration("webhook topic is required")
	case opts.Handler == nil:
		return "", apperr.InvalidConfiguration("webhook handler for topic %s is required", opts.Topic)
	}
	return method, nil
}

func (r *Registry) address(path string, method DeliveryMethod) string {
	if method == DeliveryMethodEventBridge {
		return path
	}
	return "https://" + r.hostName + path
}
