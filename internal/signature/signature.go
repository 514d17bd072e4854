// Package signature implements the HMAC-SHA256 scheme shop0 uses to sign
// OAuth callback queries and webhook bodies.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/garrettladley/shop0/internal/apperr"
)

// Canonicalize encodes params as key=value pairs sorted by key and joined with '&'.
// An empty value still contributes "key=".
func Canonicalize(params map[string]string) string {
	keys := slices.Sorted(maps.Keys(params))

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(key))
		b.WriteByte('=')
		b.WriteString(escape(params[key]))
	}
	return b.String()
}

// escape matches the upstream's component escaping: spaces become %20 and
// the sub-delims ! ' ( ) * are left alone.
var unescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escape(s string) string {
	return unescaper.Replace(url.QueryEscape(s))
}

// Sign returns the hex HMAC-SHA256 of a canonical query string.
func Sign(secret, canonical string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignBase64 returns the base64 HMAC-SHA256 of a raw request body.
func SignBase64(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Equal compares a and b without short-circuiting on content.
// Strings of different length are never equal.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

const queryHMACKey = "hmac"

// ValidateQuery checks the hmac parameter of an OAuth callback query against
// the signature of the remaining parameters.
func ValidateQuery(secret string, query map[string]string) (bool, error) {
	given, ok := query[queryHMACKey]
	if !ok || given == "" {
		return false, apperr.SignatureMismatch("query does not contain an hmac value")
	}

	rest := make(map[string]string, len(query)-1)
	for key, value := range query {
		if key != queryHMACKey {
			rest[key] = value
		}
	}

	return Equal(given, Sign(secret, Canonicalize(rest))), nil
}
