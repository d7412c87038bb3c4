package validation

import (
	"fmt"
	"sort"
)

// Kind names one class of consistency failure.
type Kind string

const (
	KindDuplicateCatalog        Kind = "duplicate-catalog"
	KindDecodeFailure           Kind = "decode-failure"
	KindInvalidCatalogFormat    Kind = "invalid-catalog-format"
	KindCatalogPathMismatch     Kind = "catalog-path-mismatch"
	KindCatalogFilenameMismatch Kind = "catalog-filename-mismatch"
	KindInvalidArtistName       Kind = "invalid-artist-name"
	KindEmptyAlbum              Kind = "empty-album"
	KindEmptyDisc               Kind = "empty-disc"
	KindMissingAlbumID          Kind = "missing-album-id"
	KindMissingReleaseDate      Kind = "missing-release-date"
	KindAlbumAlreadyExists      Kind = "album-already-exists"
	KindAlbumInfoMismatch       Kind = "album-info-mismatch"
)

// Violation is one structured consistency failure. Disc and Track are
// 1-based; zero means the violation is not scoped to one.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Catalog string `json:"catalog"`
	Disc    int    `json:"disc,omitempty"`
	Track   int    `json:"track,omitempty"`
	Detail  string `json:"detail"`
}

func (v Violation) String() string {
	scope := v.Catalog
	if v.Disc > 0 {
		scope = fmt.Sprintf("%s/%d", scope, v.Disc)
	}
	if v.Track > 0 {
		scope = fmt.Sprintf("%s track %d", scope, v.Track)
	}
	return fmt.Sprintf("%s: %s: %s", scope, v.Kind, v.Detail)
}

// sortViolations orders a report by catalog, disc, track, then kind so
// output is stable regardless of rule or worker ordering.
func sortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Catalog != b.Catalog {
			return a.Catalog < b.Catalog
		}
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Kind < b.Kind
	})
}
