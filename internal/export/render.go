package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"discograph/internal/album"
	"discograph/internal/version"
)

// Format selects the output rendering for an album.
type Format string

const (
	FormatTitle  Format = "title"
	FormatArtist Format = "artist"
	FormatDate   Format = "date"
	FormatCUE    Format = "cue"
	FormatTOML   Format = "toml"
	FormatJSON   Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTitle, FormatArtist, FormatDate, FormatCUE, FormatTOML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown print format %q", s)
	}
}

// Options tunes rendering.
type Options struct {
	// Disc is the 1-based disc to render for disc-scoped formats; 0 and 1
	// both mean the first disc.
	Disc int
	// Clean suppresses the generated-by provenance comment.
	Clean bool
}

// Render produces the album in the requested format.
func Render(a *album.Album, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatTitle:
		return []byte(a.FullTitle() + "\n"), nil
	case FormatArtist:
		return []byte(a.Artist + "\n"), nil
	case FormatDate:
		return []byte(a.Date.String() + "\n"), nil
	case FormatTOML:
		return album.Encode(a)
	case FormatJSON:
		return renderJSON(a)
	case FormatCUE:
		return renderCUE(a, opts)
	default:
		return nil, fmt.Errorf("unknown print format %q", format)
	}
}

func normalizeDisc(index int) int {
	if index < 1 {
		return 1
	}
	return index
}

func renderCUE(a *album.Album, opts Options) ([]byte, error) {
	disc, err := a.Disc(normalizeDisc(opts.Disc))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TITLE %q\n", disc.Title())
	fmt.Fprintf(&buf, "PERFORMER %q\n", disc.Artist())
	fmt.Fprintf(&buf, "REM DATE %q\n", a.Date.String())
	if !opts.Clean {
		fmt.Fprintf(&buf, "REM COMMENT %q", "Generated by discograph v"+version.Number)
	}
	for _, track := range disc.Tracks() {
		filename := fmt.Sprintf("%02d. %s.flac", track.Index(), strings.ReplaceAll(track.Title(), "/", "／"))
		fmt.Fprintf(&buf, "\nFILE %q WAVE\n", filename)
		fmt.Fprintf(&buf, "  TRACK 01 AUDIO\n")
		fmt.Fprintf(&buf, "    TITLE %q\n", track.Title())
		fmt.Fprintf(&buf, "    PERFORMER %q\n", track.Artist())
		fmt.Fprintf(&buf, "    INDEX 01 00:00:00")
	}
	return buf.Bytes(), nil
}

// jsonAlbum is the machine-readable projection. Disc and track fields are
// inheritance-resolved so consumers never reimplement the fallback rules.
type jsonAlbum struct {
	AlbumID string     `json:"album_id"`
	Title   string     `json:"title"`
	Edition string     `json:"edition,omitempty"`
	Artist  string     `json:"artist"`
	Date    string     `json:"date"`
	Type    string     `json:"type"`
	Catalog string     `json:"catalog"`
	Discs   []jsonDisc `json:"discs"`
}

type jsonDisc struct {
	Catalog string      `json:"catalog"`
	Title   string      `json:"title"`
	Artist  string      `json:"artist"`
	Type    string      `json:"type"`
	Tracks  []jsonTrack `json:"tracks"`
}

type jsonTrack struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Type   string `json:"type"`
}

func renderJSON(a *album.Album) ([]byte, error) {
	out := jsonAlbum{
		AlbumID: a.ID,
		Title:   a.Title,
		Edition: a.Edition,
		Artist:  a.Artist,
		Date:    a.Date.String(),
		Type:    string(a.DefaultType()),
		Catalog: a.Catalog,
		Discs:   make([]jsonDisc, 0, len(a.Discs)),
	}
	for _, disc := range a.DiscViews() {
		jd := jsonDisc{
			Catalog: disc.Catalog(),
			Title:   disc.Title(),
			Artist:  disc.Artist(),
			Type:    string(disc.Type()),
			Tracks:  make([]jsonTrack, 0, len(disc.Tracks())),
		}
		for _, track := range disc.Tracks() {
			jd.Tracks = append(jd.Tracks, jsonTrack{
				Title:  track.Title(),
				Artist: track.Artist(),
				Type:   string(track.Type()),
			})
		}
		out.Discs = append(out.Discs, jd)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode album %s as json: %w", a.Catalog, err)
	}
	return data, nil
}
