package webhook

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/signature"
	"github.com/garrettladley/shop0/internal/xhttp"
)

var requiredHeaders = []string{xhttp.Shop0Hmac, xhttp.Shop0Topic, xhttp.Shop0ShopDomain}

func (r *Registry) Process(w http.ResponseWriter, req *http.Request) error {
	err := r.process(req)
	apperr.WriteStatus(w, err)
	return err
}

func (r *Registry) process(req *http.Request) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return apperr.TransportFailure(fmt.Errorf("reading webhook body: %w", err))
	}
	if len(body) == 0 {
		return apperr.MissingRequiredHeader("no body was received when processing webhook")
	}

	values := make(map[string]string, len(requiredHeaders))
	var missing []string
	for _, header := range requiredHeaders {
		value := xhttp.HeaderValue(req.Header, header)
		if value == "" {
			missing = append(missing, header)
			continue
		}
		values[header] = value
	}
	if len(missing) > 0 {
		return apperr.MissingRequiredHeader("missing one or more of the required HTTP headers to process webhooks", missing...)
	}

	topic := values[xhttp.Shop0Topic]
	if !signature.Equal(r.signBody(r.secret, body), values[xhttp.Shop0Hmac]) {
		return apperr.SignatureMismatch("could not validate request for topic %s", topic)
	}

	normalized := NormalizeTopic(topic)
	e, ok := r.lookup(normalized)
	if !ok {
		return apperr.NoHandlerRegistered(topic)
	}

	if err := invoke(req, e, normalized, values[xhttp.Shop0ShopDomain], body); err != nil {
		return apperr.HandlerFailed(normalized, err)
	}
	return nil
}

// invoke runs the handler, turning a panic into an error.
func invoke(req *http.Request, e entry, topic, shop string, body []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()
	return e.handler(req.Context(), topic, shop, body)
}

// NormalizeTopic maps a delivery topic such as orders/create to its
// GraphQL enum form ORDERS_CREATE.
func NormalizeTopic(topic string) string {
	return strings.ReplaceAll(strings.ToUpper(topic), "/", "_")
}
