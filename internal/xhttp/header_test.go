package xhttp

import (
	"net/http"
	"testing"
)

func TestHeaderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header http.Header
		key    string
		want   string
	}{
		{
			name:   "canonical key",
			header: http.Header{"X-Shop0-Topic": {"orders/create"}},
			key:    Shop0Topic,
			want:   "orders/create",
		},
		{
			name:   "lower case key assigned directly",
			header: http.Header{"x-shop0-topic": {"orders/create"}},
			key:    Shop0Topic,
			want:   "orders/create",
		},
		{
			name:   "upper case key assigned directly",
			header: http.Header{"X-SHOP0-HMAC-SHA256": {"sig"}},
			key:    Shop0Hmac,
			want:   "sig",
		},
		{
			name:   "absent",
			header: http.Header{"X-Shop0-Topic": {"orders/create"}},
			key:    Shop0ShopDomain,
			want:   "",
		},
		{
			name:   "present but empty",
			header: http.Header{"x-shop0-shop-domain": {}},
			key:    Shop0ShopDomain,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HeaderValue(tt.header, tt.key); got != tt.want {
				t.Errorf("HeaderValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
