package shop0

import "testing"

func TestValidShopDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		want   bool
	}{
		{"test.myshop0.com", true},
		{"test-shop.myshop0.io", true},
		{"Test1.myshop0.com/", true},
		{"test.myshop0.com//", true},
		{"", false},
		{"-test.myshop0.com", false},
		{"test.myshop0.net", false},
		{"test.myshop0.com/admin", false},
		{"test.myshop0.com?x=1", false},
		{"https://test.myshop0.com", false},
		{"evil.com/test.myshop0.com", false},
		{"sub.test.myshop0.com", false},
	}

	for _, tt := range tests {
		if got := ValidShopDomain(tt.domain); got != tt.want {
			t.Errorf("ValidShopDomain(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}
