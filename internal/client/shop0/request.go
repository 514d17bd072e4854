package shop0

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/version"
	"github.com/garrettladley/shop0/internal/xhttp"
)

type DataType string

const (
	DataTypeJSON       DataType = "application/json"
	DataTypeURLEncoded DataType = "application/x-www-form-urlencoded"
	DataTypeGraphQL    DataType = "application/graphql"
)

type RequestSpec struct {
	Path  string
	Query url.Values

	// Type and Data describe the body of POST and PUT requests; other methods ignore them.
	Type DataType
	Data any

	ExtraHeaders map[string]string

	// Tries is the retry budget. Zero means a single attempt.
	Tries int
}

type Response struct {
	Body      any
	Raw       []byte
	Headers   http.Header
	CallLimit *CallLimit
}

// Decode unmarshals the raw response body into v.
func (r *Response) Decode(v any) error {
	return go_json.Unmarshal(r.Raw, v)
}

func (s RequestSpec) tries() (int, error) {
	switch {
	case s.Tries == 0:
		return 1, nil
	case s.Tries < 0:
		return 0, apperr.InvalidConfiguration("number of tries must be >= 1, got %d", s.Tries)
	default:
		return s.Tries, nil
	}
}

func (s RequestSpec) encodeBody(method string) ([]byte, DataType, error) {
	if method != http.MethodPost && method != http.MethodPut {
		return nil, "", nil
	}
	if s.Data == nil {
		return nil, "", nil
	}
	if str, ok := s.Data.(string); ok && str == "" {
		return nil, "", nil
	}

	switch s.Type {
	case DataTypeJSON:
		if str, ok := s.Data.(string); ok {
			return []byte(str), s.Type, nil
		}
		body, err := go_json.Marshal(s.Data)
		if err != nil {
			return nil, "", apperr.InvalidConfiguration("encoding json body: %v", err)
		}
		return body, s.Type, nil
	case DataTypeURLEncoded:
		form, err := formEncode(s.Data)
		if err != nil {
			return nil, "", err
		}
		return []byte(form), s.Type, nil
	case DataTypeGraphQL:
		str, ok := s.Data.(string)
		if !ok {
			return nil, "", apperr.InvalidConfiguration("graphql data must be a string, got %T", s.Data)
		}
		return []byte(str), s.Type, nil
	default:
		return nil, "", apperr.InvalidConfiguration("unsupported data type %q", s.Type)
	}
}

func formEncode(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case url.Values:
		return v.Encode(), nil
	case map[string]string:
		values := make(url.Values, len(v))
		for key, value := range v {
			values.Set(key, value)
		}
		return values.Encode(), nil
	case map[string]any:
		values := make(url.Values, len(v))
		for key, value := range v {
			switch typed := value.(type) {
			case []string:
				values[key] = typed
			case nil:
				values.Set(key, "")
			default:
				values.Set(key, fmt.Sprint(typed))
			}
		}
		return values.Encode(), nil
	default:
		return "", apperr.InvalidConfiguration("cannot form-encode %T", data)
	}
}

// headers merges the caller's headers with the composed user agent. The
// agent reads caller | prefix | library, most specific first.
func (c *Client) headers(spec RequestSpec, contentType DataType, hasBody bool) http.Header {
	header := make(http.Header)
	if hasBody {
		header.Set(xhttp.ContentType, string(contentType))
	}

	userAgent := version.Library()
	if c.userAgentPrefix != "" {
		userAgent = c.userAgentPrefix + " | " + userAgent
	}
	for key, value := range spec.ExtraHeaders {
		if strings.EqualFold(key, xhttp.UserAgent) {
			userAgent = value + " | " + userAgent
			continue
		}
		header.Set(key, value)
	}
	header.Set(xhttp.UserAgent, userAgent)

	return header
}
