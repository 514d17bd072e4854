package webhook

import (
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/shop0/internal/config"
)

const (
	httpEndpointType        = "WebhookHttpEndpoint"
	eventBridgeEndpointType = "WebhookEventBridgeEndpoint"
)

func buildCheckQuery(topic string, version config.APIVersion) string {
	if version.SupportsEndpointField() {
		return fmt.Sprintf(`{
  webhookSubscriptions(first: 1, topics: %s) {
    edges {
      node {
        id
        endpoint {
          __typename
          ... on %s {
            callbackUrl
          }
          ... on %s {
            arn
          }
        }
      }
    }
  }
}`, topic, httpEndpointType, eventBridgeEndpointType)
	}

	return fmt.Sprintf(`{
  webhookSubscriptions(first: 1, topics: %s) {
    edges {
      node {
        id
        callbackUrl
      }
    }
  }
}`, topic)
}

// mutation identifies one of the four subscription mutations.
type mutation struct {
	method DeliveryMethod
	update bool
}

func (m mutation) name() string {
	switch {
	case m.method == DeliveryMethodEventBridge && m.update:
		return "eventBridgeWebhookSubscriptionUpdate"
	case m.method == DeliveryMethodEventBridge:
		return "eventBridgeWebhookSubscriptionCreate"
	case m.update:
		return "webhookSubscriptionUpdate"
	default:
		return "webhookSubscriptionCreate"
	}
}

func (m mutation) subscriptionArgs(address string) string {
	if m.method == DeliveryMethodEventBridge {
		return fmt.Sprintf(`{arn: %q}`, address)
	}
	return fmt.Sprintf(`{callbackUrl: %q}`, address)
}

// buildMutation creates a subscription for topic, or updates subscriptionID when set.
func buildMutation(topic, address string, method DeliveryMethod, subscriptionID string) (string, mutation) {
	m := mutation{method: method, update: subscriptionID != ""}

	identifier := "topic: " + topic
	if m.update {
		identifier = fmt.Sprintf("id: %q", subscriptionID)
	}

	return fmt.Sprintf(`mutation webhookSubscription {
  %s(%s, webhookSubscription: %s) {
    userErrors {
      field
      message
    }
    webhookSubscription {
      id
    }
  }
}`, m.name(), identifier, m.subscriptionArgs(address)), m
}

type checkResponse struct {
	Data struct {
		WebhookSubscriptions struct {
			Edges []struct {
				Node subscriptionNode `json:"node"`
			} `json:"edges"`
		} `json:"webhookSubscriptions"`
	} `json:"data"`
}

type subscriptionNode struct {
	ID string `json:"id"`

	// CallbackURL is only returned by versions before 2020-07.
	CallbackURL string `json:"callbackUrl"`

	Endpoint *struct {
		Typename    string `json:"__typename"`
		CallbackURL string `json:"callbackUrl"`
		ARN         string `json:"arn"`
	} `json:"endpoint"`
}

func (n subscriptionNode) address() string {
	if n.Endpoint == nil {
		return n.CallbackURL
	}
	if n.Endpoint.Typename == httpEndpointType {
		return n.Endpoint.CallbackURL
	}
	return n.Endpoint.ARN
}

// existingSubscription returns the first subscription in a check response.
func existingSubscription(raw []byte) (subscriptionNode, bool, error) {
	var resp checkResponse
	if err := go_json.Unmarshal(raw, &resp); err != nil {
		return subscriptionNode{}, false, err
	}
	edges := resp.Data.WebhookSubscriptions.Edges
	if len(edges) == 0 {
		return subscriptionNode{}, false, nil
	}
	return edges[0].Node, true, nil
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type mutationPayload struct {
	UserErrors          []UserError `json:"userErrors"`
	WebhookSubscription *struct {
		ID string `json:"id"`
	} `json:"webhookSubscription"`
}

// mutationOutcome reads the payload of the mutation m was built for. Success
// means the platform returned the subscription object.
func mutationOutcome(raw []byte, m mutation) (succeeded bool, userErrors []UserError, err error) {
	var resp struct {
		Data map[string]*mutationPayload `json:"data"`
	}
	if err := go_json.Unmarshal(raw, &resp); err != nil {
		return false, nil, err
	}
	payload := resp.Data[m.name()]
	if payload == nil {
		return false, nil, nil
	}
	return payload.WebhookSubscription != nil, payload.UserErrors, nil
}
