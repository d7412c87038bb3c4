package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFormat reports a catalog that does not match the repository's
// lexical grammar.
var ErrInvalidFormat = fmt.Errorf("invalid catalog format")

// catalogPattern accepts uppercase alphanumeric segments separated by single
// hyphens, e.g. KSLA-0178, CAT-001, LACM-34613.
var catalogPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:-[A-Z0-9]+)*$`)

// Validate reports whether the provided string is a well-formed catalog.
func Validate(catalog string) error {
	trimmed := strings.TrimSpace(catalog)
	if trimmed == "" {
		return fmt.Errorf("%w: empty catalog", ErrInvalidFormat)
	}
	if trimmed != catalog {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidFormat, catalog)
	}
	if !catalogPattern.MatchString(catalog) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, catalog)
	}
	if !strings.ContainsAny(catalog, "0123456789") {
		return fmt.Errorf("%w: %q lacks a numeric component", ErrInvalidFormat, catalog)
	}
	return nil
}
