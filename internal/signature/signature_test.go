package signature

import (
	"errors"
	"testing"

	"github.com/garrettladley/shop0/internal/apperr"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{
			name:   "sorted by key",
			params: map[string]string{"timestamp": "1337", "code": "abc", "shop": "test.myshop0.com"},
			want:   "code=abc&shop=test.myshop0.com&timestamp=1337",
		},
		{
			name:   "empty value keeps its key",
			params: map[string]string{"b": "2", "a": ""},
			want:   "a=&b=2",
		},
		{
			name:   "space is percent encoded",
			params: map[string]string{"state": "st ate"},
			want:   "state=st%20ate",
		},
		{
			name:   "reserved characters escaped, sub-delims kept",
			params: map[string]string{"q": "a&b=c/d!'()*"},
			want:   "q=a%26b%3Dc%2Fd!'()*",
		},
		{
			name:   "empty",
			params: map[string]string{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Canonicalize(tt.params); got != tt.want {
				t.Errorf("Canonicalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSign(t *testing.T) {
	t.Parallel()

	const want = "ef1537cfd31c3c21d86962bf28ec3637c4defa233ca9aa1be8ddf8e7b3c4470a"
	if got := Sign("hush", "a=1&b=2"); got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}
}

func TestSignBase64(t *testing.T) {
	t.Parallel()

	const want = "A971iWIMgT8Zj9A9eWfikrFj7wQ16/Qwcc4OlRl2PLc="
	if got := SignBase64("secret", []byte(`{"id":1}`)); got != want {
		t.Errorf("SignBase64() = %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	same := []string{"", "a", "A971iWIMgT8Zj9A9eWfikrFj7wQ16/Qwcc4OlRl2PLc=", "ünïcødé"}
	for _, s := range same {
		if !Equal(s, s) {
			t.Errorf("Equal(%q, %q) = false, want true", s, s)
		}
	}

	tests := []struct {
		name string
		a, b string
	}{
		{name: "differ at start", a: "abc", b: "xbc"},
		{name: "differ at end", a: "abc", b: "abx"},
		{name: "prefix", a: "abc", b: "abcd"},
		{name: "one empty", a: "", b: "a"},
		{name: "case", a: "ABC", b: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if Equal(tt.a, tt.b) {
				t.Errorf("Equal(%q, %q) = true, want false", tt.a, tt.b)
			}
			if Equal(tt.b, tt.a) {
				t.Errorf("Equal(%q, %q) = true, want false", tt.b, tt.a)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	t.Parallel()

	const valid = "778cc84630f01087485f73421047dfa0e86b2f0f8e1516bd17cb1cf9212a9f94"

	query := func(hmac string) map[string]string {
		q := map[string]string{
			"code":      "abc",
			"shop":      "test.myshop0.com",
			"state":     "st ate",
			"timestamp": "1337",
		}
		if hmac != "" {
			q["hmac"] = hmac
		}
		return q
	}

	ok, err := ValidateQuery("secret", query(valid))
	if err != nil {
		t.Fatalf("ValidateQuery() error = %v", err)
	}
	if !ok {
		t.Error("ValidateQuery() = false for a correctly signed query")
	}

	ok, err = ValidateQuery("secret", query("00"+valid[2:]))
	if err != nil {
		t.Fatalf("ValidateQuery() error = %v", err)
	}
	if ok {
		t.Error("ValidateQuery() = true for a tampered hmac")
	}

	_, err = ValidateQuery("secret", query(""))
	if !errors.Is(err, apperr.ErrSignatureMismatch) {
		t.Errorf("ValidateQuery() error = %v, want signature mismatch", err)
	}
}
