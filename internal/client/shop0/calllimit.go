package shop0

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/garrettladley/shop0/internal/xhttp"
)

// CallLimit is the shop's REST leaky-bucket state, reported as "used/limit".
type CallLimit struct {
	Used  int
	Limit int
}

func (l CallLimit) Remaining() int {
	if remaining := l.Limit - l.Used; remaining > 0 {
		return remaining
	}
	return 0
}

// ParseCallLimit returns nil, nil when the header is absent.
func ParseCallLimit(headers http.Header) (*CallLimit, error) {
	value := strings.TrimSpace(headers.Get(xhttp.Shop0APICallLimit))
	if value == "" {
		return nil, nil
	}

	usedStr, limitStr, ok := strings.Cut(value, "/")
	if !ok {
		return nil, fmt.Errorf("call limit %q: missing '/'", value)
	}

	used, err := strconv.Atoi(strings.TrimSpace(usedStr))
	if err != nil {
		return nil, fmt.Errorf("call limit %q: %w", value, err)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
	if err != nil {
		return nil, fmt.Errorf("call limit %q: %w", value, err)
	}

	return &CallLimit{Used: used, Limit: limit}, nil
}
