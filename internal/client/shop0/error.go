package shop0

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/xhttp"
)

// classifyResponse turns a non-2xx response into a taxonomy error, folding
// the upstream error list and request id into the message.
func classifyResponse(resp *http.Response, raw []byte) *apperr.Error {
	var messages []string
	if upstream := upstreamErrors(raw); upstream != "" {
		messages = append(messages, upstream)
	}
	if id := resp.Header.Get(xhttp.XRequestID); id != "" {
		messages = append(messages, "If you report this error, please include this id: "+id)
	}

	var detail string
	if len(messages) > 0 {
		detail = ": " + strings.Join(messages, ". ")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperr.Throttled("shop0 is throttling requests"+detail, parseRetryAfter(resp.Header))
	case resp.StatusCode >= http.StatusInternalServerError:
		return apperr.InternalUpstream("shop0 internal error"+detail, resp.StatusCode)
	default:
		statusText := statusText(resp)
		return apperr.InvalidResponse(
			fmt.Sprintf("received an error response (%d %s) from shop0%s", resp.StatusCode, statusText, detail),
			resp.StatusCode,
			statusText,
		)
	}
}

func upstreamErrors(raw []byte) string {
	var body struct {
		Errors go_json.RawMessage `json:"errors"`
	}
	if err := go_json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	errs := bytes.TrimSpace(body.Errors)
	if len(errs) == 0 || bytes.Equal(errs, []byte("null")) {
		return ""
	}

	var message string
	if err := go_json.Unmarshal(errs, &message); err == nil {
		return message
	}
	var compact bytes.Buffer
	if err := go_json.Compact(&compact, errs); err != nil {
		return string(errs)
	}
	return compact.String()
}

func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// parseRetryAfter reads Retry-After as (possibly fractional) seconds.
// Absent or unparseable values yield zero.
func parseRetryAfter(header http.Header) time.Duration {
	value := strings.TrimSpace(header.Get(xhttp.RetryAfter))
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
