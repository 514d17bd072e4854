package shop0

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/xhttp"
)

// GraphQLClient posts admin GraphQL documents for one shop.
type GraphQLClient struct {
	client *Client
	path   string
	tokens oauth2.TokenSource
}

// GraphQLQuery is a single GraphQL call. A string Data is sent verbatim as
// application/graphql; anything else is encoded as a JSON body.
type GraphQLQuery struct {
	Data         any
	ExtraHeaders map[string]string
	Tries        int
}

// NewGraphQLClient resolves the access token the way cfg dictates: private
// apps use the API secret, other apps must pass accessToken.
func NewGraphQLClient(cfg config.Config, shop, accessToken string, opts ...Option) (*GraphQLClient, error) {
	token, err := cfg.AccessTokenFor(accessToken)
	if err != nil {
		return nil, err
	}
	return NewGraphQLClientFromTokenSource(cfg, shop, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}), opts...)
}

// NewGraphQLClientFromTokenSource reads the access token from tokens on every call.
func NewGraphQLClientFromTokenSource(cfg config.Config, shop string, tokens oauth2.TokenSource, opts ...Option) (*GraphQLClient, error) {
	if tokens == nil {
		return nil, apperr.InvalidConfiguration("missing access token source")
	}

	opts = append([]Option{WithUserAgentPrefix(cfg.UserAgentPrefix)}, opts...)
	client, err := New(shop, opts...)
	if err != nil {
		return nil, err
	}

	return &GraphQLClient{
		client: client,
		path:   fmt.Sprintf("/admin/api/%s/graphql.json", cfg.APIVersion),
		tokens: tokens,
	}, nil
}

func (g *GraphQLClient) Domain() string { return g.client.Domain() }

func (g *GraphQLClient) Query(ctx context.Context, query GraphQLQuery) (*Response, error) {
	dataType := DataTypeJSON
	switch data := query.Data.(type) {
	case nil:
		return nil, apperr.InvalidConfiguration("query missing")
	case string:
		if data == "" {
			return nil, apperr.InvalidConfiguration("query missing")
		}
		dataType = DataTypeGraphQL
	}

	token, err := g.tokens.Token()
	if err != nil {
		return nil, apperr.InvalidConfiguration("getting access token: %v", err)
	}

	headers := make(map[string]string, len(query.ExtraHeaders)+1)
	for key, value := range query.ExtraHeaders {
		headers[key] = value
	}
	headers[xhttp.Shop0AccessToken] = token.AccessToken

	return g.client.Post(ctx, RequestSpec{
		Path:         g.path,
		Type:         dataType,
		Data:         query.Data,
		ExtraHeaders: headers,
		Tries:        query.Tries,
	})
}
