package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"discograph/internal/catalog"
	"discograph/internal/repo"
	"discograph/internal/textutil"
)

// Rule is one independent consistency check over a tree entry.
type Rule struct {
	Name  string
	Check func(entry *repo.Entry, tree *repo.Tree) []Violation
}

// Rules returns the registered repository rules. The slice is a copy;
// callers may append their own rules without affecting the registry.
func Rules() []Rule {
	return append([]Rule(nil), registry...)
}

var registry = []Rule{
	{Name: "catalog-format", Check: checkCatalogFormat},
	{Name: "catalog-path", Check: checkCatalogPath},
	{Name: "catalog-filename", Check: checkCatalogFilename},
	{Name: "artist-name", Check: checkArtistNames},
	{Name: "structure", Check: checkStructure},
	{Name: "album-id", Check: checkAlbumID},
	{Name: "release-date", Check: checkReleaseDate},
}

func checkCatalogFormat(entry *repo.Entry, _ *repo.Tree) []Violation {
	if err := catalog.Validate(entry.Album.Catalog); err != nil {
		return []Violation{{
			Kind:    KindInvalidCatalogFormat,
			Catalog: entry.Catalog,
			Detail:  err.Error(),
		}}
	}
	return nil
}

// checkCatalogPath verifies the resolver round trip: the document's own
// catalog must resolve to the location the document actually occupies.
func checkCatalogPath(entry *repo.Entry, tree *repo.Tree) []Violation {
	expected := tree.Layout().Path(entry.Album.Catalog)
	if expected != entry.Path {
		return []Violation{{
			Kind:    KindCatalogPathMismatch,
			Catalog: entry.Album.Catalog,
			Detail:  fmt.Sprintf("catalog %s resolves to %s but document is at %s", entry.Album.Catalog, expected, entry.Path),
		}}
	}
	return nil
}

func checkCatalogFilename(entry *repo.Entry, _ *repo.Tree) []Violation {
	if entry.Catalog != entry.Album.Catalog {
		return []Violation{{
			Kind:    KindCatalogFilenameMismatch,
			Catalog: entry.Album.Catalog,
			Detail:  fmt.Sprintf("document declares catalog %s but file name implies %s", entry.Album.Catalog, entry.Catalog),
		}}
	}
	return nil
}

// variousArtists is the conventional artist for compilation releases. It is
// the one placeholder-like name an album may carry, and carrying it obliges
// every track to name its real artist.
const variousArtists = "Various Artists"

var reservedArtists = []string{"unknown artist", "[unknown]", "unknown", "n/a", "tbd"}

func isReservedArtist(name string) bool {
	folded := strings.ToLower(textutil.NormalizeNFC(name))
	for _, reserved := range reservedArtists {
		if folded == reserved {
			return true
		}
	}
	return false
}

func checkArtistNames(entry *repo.Entry, _ *repo.Tree) []Violation {
	a := entry.Album
	var out []Violation

	compilation := textutil.EqualFold(a.Artist, variousArtists)
	if isReservedArtist(a.Artist) {
		out = append(out, Violation{
			Kind:    KindInvalidArtistName,
			Catalog: entry.Catalog,
			Detail:  fmt.Sprintf("album artist %q is a reserved placeholder", a.Artist),
		})
	}

	for di, disc := range a.Discs {
		if disc.Artist != "" && isReservedArtist(disc.Artist) {
			out = append(out, Violation{
				Kind:    KindInvalidArtistName,
				Catalog: entry.Catalog,
				Disc:    di + 1,
				Detail:  fmt.Sprintf("disc artist %q is a reserved placeholder", disc.Artist),
			})
		}
		for ti, track := range disc.Tracks {
			switch {
			case track.Artist != "" && isReservedArtist(track.Artist):
				out = append(out, Violation{
					Kind:    KindInvalidArtistName,
					Catalog: entry.Catalog,
					Disc:    di + 1,
					Track:   ti + 1,
					Detail:  fmt.Sprintf("track artist %q is a reserved placeholder", track.Artist),
				})
			case track.Artist != "" && textutil.EqualFold(track.Artist, variousArtists):
				out = append(out, Violation{
					Kind:    KindInvalidArtistName,
					Catalog: entry.Catalog,
					Disc:    di + 1,
					Track:   ti + 1,
					Detail:  fmt.Sprintf("track artist %q is only valid as an album artist", variousArtists),
				})
			case compilation && track.Artist == "" && disc.Artist == "":
				out = append(out, Violation{
					Kind:    KindInvalidArtistName,
					Catalog: entry.Catalog,
					Disc:    di + 1,
					Track:   ti + 1,
					Detail:  "compilation track must name its artist",
				})
			}
		}
	}
	return out
}

func checkStructure(entry *repo.Entry, _ *repo.Tree) []Violation {
	a := entry.Album
	if len(a.Discs) == 0 {
		return []Violation{{
			Kind:    KindEmptyAlbum,
			Catalog: entry.Catalog,
			Detail:  "album has no discs",
		}}
	}
	var out []Violation
	for di, disc := range a.Discs {
		if len(disc.Tracks) == 0 {
			out = append(out, Violation{
				Kind:    KindEmptyDisc,
				Catalog: entry.Catalog,
				Disc:    di + 1,
				Detail:  "disc has no tracks",
			})
		}
	}
	return out
}

func checkAlbumID(entry *repo.Entry, _ *repo.Tree) []Violation {
	if entry.Album.ID == "" {
		return []Violation{{
			Kind:    KindMissingAlbumID,
			Catalog: entry.Catalog,
			Detail:  "album_id is missing; run migrate",
		}}
	}
	if _, err := uuid.Parse(entry.Album.ID); err != nil {
		return []Violation{{
			Kind:    KindMissingAlbumID,
			Catalog: entry.Catalog,
			Detail:  fmt.Sprintf("album_id %q is not a valid UUID", entry.Album.ID),
		}}
	}
	return nil
}

func checkReleaseDate(entry *repo.Entry, _ *repo.Tree) []Violation {
	if (entry.Album.Date == toml.LocalDate{}) {
		return []Violation{{
			Kind:    KindMissingReleaseDate,
			Catalog: entry.Catalog,
			Detail:  "release date is missing",
		}}
	}
	return nil
}
