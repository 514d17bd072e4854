package apperr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies one failure in the closed set returned by this module.
type Kind int

const (
	KindThrottled Kind = iota + 1
	KindInternalUpstream
	KindInvalidResponse
	KindTransportFailure
	KindRetryBudgetExhausted
	KindInvalidConfiguration
	KindSignatureMismatch
	KindMissingRequiredHeader
	KindNoHandlerRegistered
	KindHandlerFailed
)

var kindNames = map[Kind]string{
	KindThrottled:             "throttled",
	KindInternalUpstream:      "internal_upstream",
	KindInvalidResponse:       "invalid_response",
	KindTransportFailure:      "transport_failure",
	KindRetryBudgetExhausted:  "retry_budget_exhausted",
	KindInvalidConfiguration:  "invalid_configuration",
	KindSignatureMismatch:     "signature_mismatch",
	KindMissingRequiredHeader: "missing_required_header",
	KindNoHandlerRegistered:   "no_handler_registered",
	KindHandlerFailed:         "handler_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Retriable reports whether the client may spend another attempt on this kind.
func (k Kind) Retriable() bool {
	return k == KindThrottled || k == KindInternalUpstream
}

type Error struct {
	Kind    Kind
	Message string

	// StatusCode and StatusText are set for upstream responses.
	StatusCode int
	StatusText string

	// RetryAfter is the upstream's requested delay; zero when it sent none.
	RetryAfter time.Duration

	// Headers lists the absent headers of a MissingRequiredHeader failure.
	Headers []string

	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so the Err* values below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Retriable() bool { return e.Kind.Retriable() }

var (
	ErrThrottled             = &Error{Kind: KindThrottled}
	ErrInternalUpstream      = &Error{Kind: KindInternalUpstream}
	ErrInvalidResponse       = &Error{Kind: KindInvalidResponse}
	ErrTransportFailure      = &Error{Kind: KindTransportFailure}
	ErrRetryBudgetExhausted  = &Error{Kind: KindRetryBudgetExhausted}
	ErrInvalidConfiguration  = &Error{Kind: KindInvalidConfiguration}
	ErrSignatureMismatch     = &Error{Kind: KindSignatureMismatch}
	ErrMissingRequiredHeader = &Error{Kind: KindMissingRequiredHeader}
	ErrNoHandlerRegistered   = &Error{Kind: KindNoHandlerRegistered}
	ErrHandlerFailed         = &Error{Kind: KindHandlerFailed}
)

func Throttled(message string, retryAfter time.Duration) *Error {
	return &Error{Kind: KindThrottled, Message: message, StatusCode: 429, RetryAfter: retryAfter}
}

func InternalUpstream(message string, statusCode int) *Error {
	return &Error{Kind: KindInternalUpstream, Message: message, StatusCode: statusCode}
}

func InvalidResponse(message string, statusCode int, statusText string) *Error {
	return &Error{Kind: KindInvalidResponse, Message: message, StatusCode: statusCode, StatusText: statusText}
}

func TransportFailure(cause error) *Error {
	return &Error{Kind: KindTransportFailure, Message: "failed to make shop0 HTTP request", Cause: cause}
}

func RetryBudgetExhausted(tries int, last error) *Error {
	return &Error{
		Kind:    KindRetryBudgetExhausted,
		Message: fmt.Sprintf("exceeded maximum retry count of %d. last message: %s", tries, last.Error()),
	}
}

func InvalidConfiguration(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidConfiguration, Message: fmt.Sprintf(format, args...)}
}

func SignatureMismatch(format string, args ...any) *Error {
	return &Error{Kind: KindSignatureMismatch, Message: fmt.Sprintf(format, args...)}
}

func MissingRequiredHeader(message string, headers ...string) *Error {
	if len(headers) > 0 {
		message = fmt.Sprintf("%s: [%s]", message, strings.Join(headers, ", "))
	}
	return &Error{Kind: KindMissingRequiredHeader, Message: message, Headers: headers}
}

func NoHandlerRegistered(topic string) *Error {
	return &Error{Kind: KindNoHandlerRegistered, Message: "no webhook is registered for topic " + topic}
}

func HandlerFailed(topic string, cause error) *Error {
	return &Error{Kind: KindHandlerFailed, Message: "webhook handler failed for topic " + topic, Cause: cause}
}

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func IsRetriable(err error) bool {
	e := As(err)
	return e != nil && e.Retriable()
}
