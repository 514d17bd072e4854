package shop0

import "regexp"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshop0\.(com|io)[/]*$`)

// ValidShopDomain reports whether domain names a shop host with no scheme,
// path or query. Trailing slashes are tolerated.
func ValidShopDomain(domain string) bool {
	return shopDomainPattern.MatchString(domain)
}
