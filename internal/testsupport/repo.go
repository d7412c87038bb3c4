// Package testsupport builds throwaway repositories and fixtures for tests.
package testsupport

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"discograph/internal/album"
	"discograph/internal/fileutil"
	"discograph/internal/repo"
)

// NewRepo initializes an empty repository under a temp directory and
// returns its root.
func NewRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := repo.Init(root, "test-repo"); err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return root
}

// SampleAlbum builds a minimal valid album with the given catalog and one
// track per provided title. Titles are split across discs by the discs
// argument: each inner slice is one disc. The album_id is derived from the
// catalog so distinct catalogs never collide.
func SampleAlbum(cat string, discs ...[]string) *album.Album {
	h := fnv.New64a()
	_, _ = h.Write([]byte(cat))
	a := &album.Album{
		ID:      fmt.Sprintf("00000000-0000-4000-8000-%012x", h.Sum64()&0xffffffffffff),
		Title:   "Album " + cat,
		Artist:  "Test Artist",
		Date:    toml.LocalDate{Year: 2024, Month: 6, Day: 1},
		Catalog: cat,
	}
	if len(discs) == 0 {
		discs = [][]string{{"Track One"}}
	}
	for _, titles := range discs {
		disc := album.Disc{}
		for _, title := range titles {
			disc.Tracks = append(disc.Tracks, album.Track{Title: title})
		}
		a.Discs = append(a.Discs, disc)
	}
	return a
}

// WriteAlbum encodes the album and writes it at its layout path.
func WriteAlbum(t *testing.T, root string, a *album.Album) {
	t.Helper()
	WriteAlbumAt(t, root, a, a.Catalog)
}

// WriteAlbumAt writes the album's document under the path resolved for
// pathCatalog, which lets tests plant catalog/path mismatches.
func WriteAlbumAt(t *testing.T, root string, a *album.Album, pathCatalog string) {
	t.Helper()
	data, err := album.Encode(a)
	if err != nil {
		t.Fatalf("encode album %s: %v", a.Catalog, err)
	}
	WriteDocument(t, root, pathCatalog, data)
}

// WriteDocument writes raw document bytes at the layout path for the given
// catalog.
func WriteDocument(t *testing.T, root, cat string, data []byte) {
	t.Helper()
	manifest, err := repo.LoadManifest(root)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	layout, err := manifest.Layout()
	if err != nil {
		t.Fatalf("resolve layout: %v", err)
	}
	target := filepath.Join(root, filepath.FromSlash(layout.Path(cat)))
	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		t.Fatalf("write document %s: %v", cat, err)
	}
}

// LoadTree builds the repository tree or fails the test.
func LoadTree(t *testing.T, root string) *repo.Tree {
	t.Helper()
	tree, err := repo.Load(context.Background(), root, repo.Options{})
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// DocumentPath resolves the on-disk path for a catalog in a test repo.
func DocumentPath(t *testing.T, root, cat string) string {
	t.Helper()
	manifest, err := repo.LoadManifest(root)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	layout, err := manifest.Layout()
	if err != nil {
		t.Fatalf("resolve layout: %v", err)
	}
	return filepath.Join(root, filepath.FromSlash(layout.Path(cat)))
}
