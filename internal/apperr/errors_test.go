package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsMatchesByKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "throttled matches throttled",
			err:    Throttled("slow down", 2*time.Second),
			target: ErrThrottled,
			want:   true,
		},
		{
			name:   "wrapped internal upstream",
			err:    fmt.Errorf("calling api: %w", InternalUpstream("boom", 502)),
			target: ErrInternalUpstream,
			want:   true,
		},
		{
			name:   "throttled is not internal upstream",
			err:    Throttled("slow down", 0),
			target: ErrInternalUpstream,
			want:   false,
		},
		{
			name:   "handler failure unwraps to cause",
			err:    HandlerFailed("ORDERS_CREATE", errBoom),
			target: errBoom,
			want:   true,
		},
		{
			name:   "budget exhaustion does not unwrap to the last error",
			err:    RetryBudgetExhausted(3, Throttled("slow down", 0)),
			target: ErrThrottled,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

var errBoom = errors.New("boom")

func TestIsRetriable(t *testing.T) {
	t.Parallel()

	retriable := []error{
		Throttled("slow down", 0),
		InternalUpstream("boom", 500),
		fmt.Errorf("wrapped: %w", InternalUpstream("boom", 503)),
	}
	for _, err := range retriable {
		if !IsRetriable(err) {
			t.Errorf("IsRetriable(%v) = false, want true", err)
		}
	}

	terminal := []error{
		InvalidResponse("not found", 404, "Not Found"),
		TransportFailure(errBoom),
		RetryBudgetExhausted(2, InternalUpstream("boom", 500)),
		InvalidConfiguration("tries must be >= 1, got %d", 0),
		SignatureMismatch("could not validate request"),
		MissingRequiredHeader("missing headers", "X-Shop0-Topic"),
		NoHandlerRegistered("ORDERS_CREATE"),
		HandlerFailed("ORDERS_CREATE", errBoom),
		errBoom,
		nil,
	}
	for _, err := range terminal {
		if IsRetriable(err) {
			t.Errorf("IsRetriable(%v) = true, want false", err)
		}
	}
}

func TestMissingRequiredHeaderNamesEveryHeader(t *testing.T) {
	t.Parallel()

	err := MissingRequiredHeader("missing one or more required headers", "X-Shop0-Hmac-Sha256", "X-Shop0-Topic")

	const want = "missing one or more required headers: [X-Shop0-Hmac-Sha256, X-Shop0-Topic]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if len(err.Headers) != 2 {
		t.Errorf("Headers = %v, want 2 entries", err.Headers)
	}
}

func TestRetryBudgetExhaustedCarriesLastMessage(t *testing.T) {
	t.Parallel()

	err := RetryBudgetExhausted(3, Throttled("shop0 is throttling requests", time.Second))

	const want = "exceeded maximum retry count of 3. last message: shop0 is throttling requests"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWriteStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: http.StatusOK},
		{name: "empty body", err: MissingRequiredHeader("no body"), want: http.StatusBadRequest},
		{name: "bad signature", err: SignatureMismatch("nope"), want: http.StatusForbidden},
		{name: "unknown topic", err: NoHandlerRegistered("ORDERS_CREATE"), want: http.StatusForbidden},
		{name: "handler error", err: HandlerFailed("ORDERS_CREATE", errBoom), want: http.StatusInternalServerError},
		{name: "foreign error", err: errBoom, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			if got := WriteStatus(rec, tt.err); got != tt.want {
				t.Errorf("WriteStatus() = %d, want %d", got, tt.want)
			}
			if rec.Code != tt.want {
				t.Errorf("recorded status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("body = %q, want empty", rec.Body.String())
			}
		})
	}
}
