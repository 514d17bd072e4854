package validator

import (
	"maps"
	"slices"
	"strings"

	"github.com/garrettladley/shop0/internal/apperr"
)

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

// Validate returns an InvalidConfiguration error naming every failing field, or nil.
func Validate(v Validator) error {
	errs := v.Validate()
	if len(errs) == 0 {
		return nil
	}
	fields := slices.Sorted(maps.Keys(errs))
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + " (" + errs[field] + ")"
	}
	return apperr.InvalidConfiguration("cannot initialize shop0 API library, invalid values for: %s", strings.Join(parts, ", "))
}
