package album

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Album is one released work. Optional fields are empty when the document
// omits them; use DiscView/TrackView for inheritance-resolved access.
type Album struct {
	// ID is the globally unique album identifier (a UUID). Empty only for
	// documents that predate the assign-album-id migration.
	ID      string
	Title   string
	Edition string
	Artist  string
	Date    toml.LocalDate
	Type    TrackType
	Catalog string
	Discs   []Disc
}

// Disc is one physical or logical disc within an album.
type Disc struct {
	Catalog string
	Title   string
	Artist  string
	Type    TrackType
	Tracks  []Track
}

// Track is a single track on a disc.
type Track struct {
	Title  string
	Artist string
	Type   TrackType
}

// FullTitle renders the album title with its edition marker, when present.
func (a *Album) FullTitle() string {
	if a.Edition == "" {
		return a.Title
	}
	return fmt.Sprintf("%s【%s】", a.Title, a.Edition)
}

// DefaultType is the album-level track type, falling back to normal.
func (a *Album) DefaultType() TrackType {
	if a.Type == "" {
		return TypeNormal
	}
	return a.Type
}

// Disc returns an inheritance-resolved view of the 1-based disc index.
func (a *Album) Disc(index int) (DiscView, error) {
	if index < 1 || index > len(a.Discs) {
		return DiscView{}, fmt.Errorf("album %s has no disc %d", a.Catalog, index)
	}
	return DiscView{album: a, index: index, disc: &a.Discs[index-1]}, nil
}

// DiscViews returns resolved views over every disc in order.
func (a *Album) DiscViews() []DiscView {
	views := make([]DiscView, len(a.Discs))
	for i := range a.Discs {
		views[i] = DiscView{album: a, index: i + 1, disc: &a.Discs[i]}
	}
	return views
}

// DiscView resolves a disc's fields against its parent album.
type DiscView struct {
	album *Album
	index int
	disc  *Disc
}

// Index is the 1-based disc position.
func (v DiscView) Index() int { return v.index }

func (v DiscView) Catalog() string {
	if v.disc.Catalog != "" {
		return v.disc.Catalog
	}
	return v.album.Catalog
}

func (v DiscView) Title() string {
	if v.disc.Title != "" {
		return v.disc.Title
	}
	return v.album.Title
}

func (v DiscView) Artist() string {
	if v.disc.Artist != "" {
		return v.disc.Artist
	}
	return v.album.Artist
}

func (v DiscView) Type() TrackType {
	if v.disc.Type != "" {
		return v.disc.Type
	}
	return v.album.DefaultType()
}

// Tracks returns resolved views over the disc's tracks in order.
func (v DiscView) Tracks() []TrackView {
	views := make([]TrackView, len(v.disc.Tracks))
	for i := range v.disc.Tracks {
		views[i] = TrackView{disc: v, index: i + 1, track: &v.disc.Tracks[i]}
	}
	return views
}

// TrackView resolves a track's fields against its disc and album.
type TrackView struct {
	disc  DiscView
	index int
	track *Track
}

// Index is the 1-based track position on the disc.
func (v TrackView) Index() int { return v.index }

func (v TrackView) Title() string { return v.track.Title }

func (v TrackView) Artist() string {
	if v.track.Artist != "" {
		return v.track.Artist
	}
	return v.disc.Artist()
}

func (v TrackView) Type() TrackType {
	if v.track.Type != "" {
		return v.track.Type
	}
	return v.disc.Type()
}

// TrackCount is the total number of tracks across all discs.
func (a *Album) TrackCount() int {
	total := 0
	for _, disc := range a.Discs {
		total += len(disc.Tracks)
	}
	return total
}
