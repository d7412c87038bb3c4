package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"discograph/internal/album"
	"discograph/internal/repo"
	"discograph/internal/validation"
)

// RejectionError carries the violations that made a candidate inadmissible.
type RejectionError struct {
	Catalog    string
	Violations []validation.Violation
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("candidate %s rejected with %d violation(s)", e.Catalog, len(e.Violations))
}

// Options tunes one import.
type Options struct {
	// SourceDir is the audio directory the candidate was built from; when
	// set, its name is checked against the candidate's identity.
	SourceDir string
}

// Import validates the candidate against the tree and writes its document
// at the catalog's layout path. Any violation is fatal to the import and
// leaves the tree unchanged.
func Import(tree *repo.Tree, candidate *album.Album, opts Options) error {
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	violations := validation.ValidateCandidate(candidate, opts.SourceDir, tree)
	if len(violations) > 0 {
		return &RejectionError{Catalog: candidate.Catalog, Violations: violations}
	}
	if err := tree.AddAlbum(candidate); err != nil {
		return fmt.Errorf("add %s: %w", candidate.Catalog, err)
	}
	return nil
}

// ScanOptions supplies the fields a source directory cannot provide.
type ScanOptions struct {
	// Artist is the album artist; source directories do not carry one.
	Artist string
	// Date is the release date.
	Date toml.LocalDate
}

var (
	dirPattern   = regexp.MustCompile(`^\[([^\]]+)\] (.+)$`)
	trackPattern = regexp.MustCompile(`^(\d{2,})\. (.+)$`)
)

// ScanDirectory builds a candidate album from an audio source directory
// named "[CATALOG] Title". Audio files directly in the directory form a
// single disc; otherwise each subdirectory holding audio files becomes one
// disc, in name order.
func ScanDirectory(dir string, opts ScanOptions) (*album.Album, error) {
	if strings.TrimSpace(opts.Artist) == "" {
		return nil, fmt.Errorf("scan %s: album artist required", dir)
	}

	name := filepath.Base(filepath.Clean(dir))
	match := dirPattern.FindStringSubmatch(name)
	if match == nil {
		return nil, fmt.Errorf("scan %s: directory name must follow \"[CATALOG] Title\"", dir)
	}

	a := &album.Album{
		Title:   strings.TrimSpace(match[2]),
		Artist:  opts.Artist,
		Date:    opts.Date,
		Catalog: match[1],
	}

	tracks, err := scanDisc(dir)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		a.Discs = append(a.Discs, album.Disc{Tracks: tracks})
		return a, nil
	}

	subdirs, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, entry := range subdirs {
		if !entry.IsDir() {
			continue
		}
		tracks, err := scanDisc(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(tracks) > 0 {
			a.Discs = append(a.Discs, album.Disc{Tracks: tracks})
		}
	}
	if len(a.Discs) == 0 {
		return nil, fmt.Errorf("scan %s: no audio files found", dir)
	}
	return a, nil
}

func scanDisc(dir string) ([]album.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isAudioFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tracks := make([]album.Track, 0, len(names))
	for _, name := range names {
		tracks = append(tracks, album.Track{Title: trackTitle(name)})
	}
	return tracks, nil
}

func isAudioFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".flac", ".tak", ".ape", ".wav":
		return true
	default:
		return false
	}
}

func trackTitle(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if match := trackPattern.FindStringSubmatch(stem); match != nil {
		return match[2]
	}
	return stem
}
