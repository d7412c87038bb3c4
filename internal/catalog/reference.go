package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidReference reports a malformed album or disc reference.
var ErrInvalidReference = fmt.Errorf("invalid reference")

// Reference addresses an album, or a single disc within it, using the
// "CATALOG" or "CATALOG/disc" syntax. Disc is 1-based; a reference without
// a disc suffix addresses disc 1.
type Reference struct {
	Catalog string
	Disc    int
}

// ParseReference parses the reference syntax. Disc suffixes 0 and 1 both
// normalize to disc 1; larger suffixes address that disc directly.
func ParseReference(input string) (Reference, error) {
	parts := strings.Split(input, "/")
	if len(parts) > 2 {
		return Reference{}, fmt.Errorf("%w: %q has more than one disc separator", ErrInvalidReference, input)
	}
	if err := Validate(parts[0]); err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	ref := Reference{Catalog: parts[0], Disc: 1}
	if len(parts) == 2 {
		disc, err := strconv.Atoi(parts[1])
		if err != nil || disc < 0 {
			return Reference{}, fmt.Errorf("%w: bad disc suffix %q", ErrInvalidReference, parts[1])
		}
		if disc > 0 {
			ref.Disc = disc
		}
	}
	return ref, nil
}

// String renders the canonical form of the reference. Disc 1 renders
// without a suffix; ParseReference(r.String()) yields r for Disc >= 1.
func (r Reference) String() string {
	if r.Disc <= 1 {
		return r.Catalog
	}
	return r.Catalog + "/" + strconv.Itoa(r.Disc)
}
