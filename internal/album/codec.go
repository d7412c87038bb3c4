package album

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// document is the on-disk shape of an album. Field order here is the
// canonical key order of encoded documents.
type document struct {
	Album albumSection  `toml:"album"`
	Discs []discSection `toml:"discs,omitempty"`
}

type albumSection struct {
	AlbumID string         `toml:"album_id,omitempty"`
	Title   string         `toml:"title"`
	Edition string         `toml:"edition,omitempty"`
	Artist  string         `toml:"artist"`
	Date    toml.LocalDate `toml:"date"`
	Type    TrackType      `toml:"type,omitempty"`
	Catalog string         `toml:"catalog"`
}

type discSection struct {
	Catalog string         `toml:"catalog,omitempty"`
	Title   string         `toml:"title,omitempty"`
	Artist  string         `toml:"artist,omitempty"`
	Type    TrackType      `toml:"type,omitempty"`
	Tracks  []trackSection `toml:"tracks,omitempty"`
}

type trackSection struct {
	Title  string    `toml:"title"`
	Artist string    `toml:"artist,omitempty"`
	Type   TrackType `toml:"type,omitempty"`
}

// Decode parses a TOML album document. Unknown keys, track types outside
// the closed enumeration, and missing required fields are all errors.
func Decode(data []byte) (*Album, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, classify(err)
	}

	a := &Album{
		ID:      doc.Album.AlbumID,
		Title:   doc.Album.Title,
		Edition: doc.Album.Edition,
		Artist:  doc.Album.Artist,
		Date:    doc.Album.Date,
		Type:    doc.Album.Type,
		Catalog: doc.Album.Catalog,
	}
	for _, disc := range doc.Discs {
		d := Disc{
			Catalog: disc.Catalog,
			Title:   disc.Title,
			Artist:  disc.Artist,
			Type:    disc.Type,
		}
		for _, track := range disc.Tracks {
			d.Tracks = append(d.Tracks, Track{
				Title:  track.Title,
				Artist: track.Artist,
				Type:   track.Type,
			})
		}
		a.Discs = append(a.Discs, d)
	}

	if err := a.checkRequired(); err != nil {
		return nil, err
	}
	if err := a.checkTypes(); err != nil {
		return nil, err
	}
	return a, nil
}

// Encode serializes the album back to its TOML document form in canonical
// key order. Decode(Encode(a)) reproduces a exactly.
func Encode(a *Album) ([]byte, error) {
	doc := document{
		Album: albumSection{
			AlbumID: a.ID,
			Title:   a.Title,
			Edition: a.Edition,
			Artist:  a.Artist,
			Date:    a.Date,
			Type:    a.Type,
			Catalog: a.Catalog,
		},
	}
	for _, d := range a.Discs {
		disc := discSection{
			Catalog: d.Catalog,
			Title:   d.Title,
			Artist:  d.Artist,
			Type:    d.Type,
		}
		for _, t := range d.Tracks {
			disc.Tracks = append(disc.Tracks, trackSection{
				Title:  t.Title,
				Artist: t.Artist,
				Type:   t.Type,
			})
		}
		doc.Discs = append(doc.Discs, disc)
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode album %s: %w", a.Catalog, err)
	}
	return out, nil
}

func (a *Album) checkRequired() error {
	missing := func(field string) error {
		return decodeErrorf(KindMissingRequiredField, nil, "album.%s is required", field)
	}
	if a.Title == "" {
		return missing("title")
	}
	if a.Artist == "" {
		return missing("artist")
	}
	if a.Catalog == "" {
		return missing("catalog")
	}
	if (a.Date == toml.LocalDate{}) {
		return missing("date")
	}
	for di, disc := range a.Discs {
		for ti, track := range disc.Tracks {
			if track.Title == "" {
				return decodeErrorf(KindMissingRequiredField, nil,
					"disc %d track %d: title is required", di+1, ti+1)
			}
		}
	}
	return nil
}

func (a *Album) checkTypes() error {
	invalid := func(where string, err error) error {
		return decodeErrorf(KindInvalidEnumValue, err, "%s: %v", where, err)
	}
	if err := a.Type.Validate(); err != nil {
		return invalid("album.type", err)
	}
	for di, disc := range a.Discs {
		if err := disc.Type.Validate(); err != nil {
			return invalid(fmt.Sprintf("disc %d type", di+1), err)
		}
		for ti, track := range disc.Tracks {
			if err := track.Type.Validate(); err != nil {
				return invalid(fmt.Sprintf("disc %d track %d type", di+1, ti+1), err)
			}
		}
	}
	return nil
}

func classify(err error) error {
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return decodeErrorf(KindUnknownField, err, "%s", strictErr.String())
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErrorf(KindMalformedSyntax, err, "%s", decodeErr.Error())
	}
	return decodeErrorf(KindMalformedSyntax, err, "%v", err)
}
