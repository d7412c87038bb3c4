package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"discograph/internal/album"
	"discograph/internal/catalog"
	"discograph/internal/fileutil"
)

// ErrAlbumNotFound reports a lookup for a catalog the tree does not hold.
var ErrAlbumNotFound = errors.New("album not found")

// ErrAlbumExists reports an attempt to create a document for a catalog that
// already has one.
var ErrAlbumExists = errors.New("album already exists")

// Entry is one album document in the tree. Catalog is derived from the file
// name; Album is nil when the document failed to decode.
type Entry struct {
	Catalog string
	Path    string // relative to the repository root
	Raw     []byte // document bytes as read from disk
	Album   *album.Album
	Err     error
}

// Tree is the index over every album document under a repository root.
type Tree struct {
	Root     string
	Manifest *Manifest

	layout  catalog.Layout
	entries map[string]*Entry
	order   []string

	// Duplicates holds documents whose catalog collided with an earlier
	// entry. They are reported by validation, never silently replaced.
	Duplicates []*Entry
}

// Options tunes tree construction.
type Options struct {
	// Workers bounds the decode pool; 0 means one per CPU.
	Workers int
}

// Load walks the repository and decodes every album document.
func Load(ctx context.Context, root string, opts Options) (*Tree, error) {
	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}
	layout, err := manifest.Layout()
	if err != nil {
		return nil, err
	}

	paths, err := collectDocuments(root)
	if err != nil {
		return nil, err
	}

	entries, err := decodeAll(ctx, root, paths, opts.Workers)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Root:     root,
		Manifest: manifest,
		layout:   layout,
		entries:  make(map[string]*Entry, len(entries)),
	}
	for _, entry := range entries {
		if _, taken := tree.entries[entry.Catalog]; taken {
			tree.Duplicates = append(tree.Duplicates, entry)
			continue
		}
		tree.entries[entry.Catalog] = entry
		tree.order = append(tree.order, entry.Catalog)
	}
	sortCatalogs(tree.order)
	return tree, nil
}

func collectDocuments(root string) ([]string, error) {
	albumRoot := filepath.Join(root, catalog.AlbumDir)
	var paths []string
	err := filepath.WalkDir(albumRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), catalog.DocumentExt) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk repository: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// decodeAll reads and decodes documents on a bounded worker pool. Results
// are index-aligned with paths, so output order is deterministic regardless
// of scheduling.
func decodeAll(ctx context.Context, root string, paths []string, workers int) ([]*Entry, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}

	entries := make([]*Entry, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = decodeOne(root, paths[i])
			}
		}()
	}

	var cancelErr error
feed:
	for i := range paths {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break feed
		}
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelErr != nil {
		return nil, cancelErr
	}
	return entries, nil
}

func decodeOne(root, relPath string) *Entry {
	entry := &Entry{Path: relPath}
	if cat, ok := catalog.FromPath(relPath); ok {
		entry.Catalog = cat
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		entry.Err = fmt.Errorf("read document: %w", err)
		return entry
	}
	entry.Raw = data

	parsed, err := album.Decode(data)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Album = parsed
	return entry
}

// Album looks up an entry by catalog.
func (t *Tree) Album(cat string) (*Entry, bool) {
	entry, ok := t.entries[cat]
	return entry, ok
}

// AlbumByRef resolves a reference to its entry, requiring a decodable album
// and a valid disc index.
func (t *Tree) AlbumByRef(ref catalog.Reference) (*Entry, error) {
	entry, ok := t.entries[ref.Catalog]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, ref.Catalog)
	}
	if entry.Err != nil {
		return nil, fmt.Errorf("album %s is unreadable: %w", ref.Catalog, entry.Err)
	}
	if ref.Disc > len(entry.Album.Discs) {
		return nil, fmt.Errorf("album %s has no disc %d", ref.Catalog, ref.Disc)
	}
	return entry, nil
}

// Entries returns every entry ordered by catalog.
func (t *Tree) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, cat := range t.order {
		out = append(out, t.entries[cat])
	}
	return out
}

// Len is the number of indexed albums, excluding duplicates.
func (t *Tree) Len() int { return len(t.entries) }

// Layout is the path policy the repository manifest records.
func (t *Tree) Layout() catalog.Layout { return t.layout }

// AbsPath returns the absolute document path for an entry.
func (t *Tree) AbsPath(entry *Entry) string {
	return filepath.Join(t.Root, filepath.FromSlash(entry.Path))
}

// DocumentPath resolves the document location for a catalog under the
// repository layout.
func (t *Tree) DocumentPath(cat string) string {
	return filepath.Join(t.Root, filepath.FromSlash(t.layout.Path(cat)))
}

// WriteAlbum re-encodes an album the tree already tracks and rewrites its
// document in place, keeping the in-memory entry in sync.
func (t *Tree) WriteAlbum(a *album.Album) error {
	entry, ok := t.entries[a.Catalog]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAlbumNotFound, a.Catalog)
	}
	data, err := album.Encode(a)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(t.AbsPath(entry), data, 0o644); err != nil {
		return fmt.Errorf("write album %s: %w", a.Catalog, err)
	}
	entry.Album = a
	entry.Raw = data
	entry.Err = nil
	return nil
}

// AddAlbum writes a document for a catalog the tree does not yet hold, at
// the path the layout resolves for it.
func (t *Tree) AddAlbum(a *album.Album) error {
	if _, taken := t.entries[a.Catalog]; taken {
		return fmt.Errorf("%w: %s", ErrAlbumExists, a.Catalog)
	}
	target := t.DocumentPath(a.Catalog)
	if fileutil.Exists(target) {
		return fmt.Errorf("%w: document already at %s", ErrAlbumExists, target)
	}
	data, err := album.Encode(a)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf("write album %s: %w", a.Catalog, err)
	}
	rel, err := filepath.Rel(t.Root, target)
	if err != nil {
		return err
	}
	entry := &Entry{Catalog: a.Catalog, Path: filepath.ToSlash(rel), Raw: data, Album: a}
	t.entries[a.Catalog] = entry
	t.order = append(t.order, a.Catalog)
	sortCatalogs(t.order)
	return nil
}

// sortCatalogs orders catalogs with numeric collation so CAT-2 sorts before
// CAT-10. Collation is deterministic, which compile determinism relies on.
func sortCatalogs(catalogs []string) {
	collator := collate.New(language.Und, collate.Numeric)
	collator.SortStrings(catalogs)
}
