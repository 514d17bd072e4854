package config

import "slices"

type APIVersion string

const (
	APIVersionApril20   APIVersion = "2020-04"
	APIVersionJuly20    APIVersion = "2020-07"
	APIVersionOctober20 APIVersion = "2020-10"
	APIVersionJanuary21 APIVersion = "2021-01"
	APIVersionUnstable  APIVersion = "unstable"
)

var knownVersions = []APIVersion{
	APIVersionApril20,
	APIVersionJuly20,
	APIVersionOctober20,
	APIVersionJanuary21,
	APIVersionUnstable,
}

func (v APIVersion) Known() bool {
	return slices.Contains(knownVersions, v)
}

// Compatible reports whether v includes everything introduced in ref.
// Unstable tracks the newest API and is compatible with every version.
func (v APIVersion) Compatible(ref APIVersion) bool {
	if v == APIVersionUnstable {
		return true
	}
	if ref == APIVersionUnstable {
		return false
	}
	// dated versions are YYYY-MM, so lexical order is chronological
	return string(v) >= string(ref)
}

// SupportsEndpointField reports whether webhook subscriptions expose the
// endpoint union, which is also what event-bus delivery requires.
func (v APIVersion) SupportsEndpointField() bool {
	return v.Compatible(APIVersionJuly20)
}
