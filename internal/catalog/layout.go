package catalog

import (
	"fmt"
	"path"
	"strings"
)

// AlbumDir is the directory under the repository root that holds album
// documents, regardless of layout version.
const AlbumDir = "album"

// DocumentExt is the file extension of album documents.
const DocumentExt = ".toml"

// Layout maps a catalog to the relative path of its album document. The
// mapping must be a pure function of the catalog string.
type Layout interface {
	// Version identifies the layout policy recorded in the repository
	// manifest.
	Version() int
	// Path returns the document path for catalog, relative to the
	// repository root, using forward slashes.
	Path(catalog string) string
}

// FlatLayout stores every document directly under the album directory.
// Suitable for small repositories; layout version 0.
type FlatLayout struct{}

func (FlatLayout) Version() int { return 0 }

func (FlatLayout) Path(catalog string) string {
	return path.Join(AlbumDir, catalog+DocumentExt)
}

// BucketLayout shards documents into fixed-width prefix buckets so large
// repositories keep directory sizes bounded and version-control diffs local.
// With Depth 1, KSLA-0178 resolves to album/KS/KSLA-0178.toml.
type BucketLayout struct {
	// Depth is the number of bucket levels. Each level consumes two
	// characters of the catalog prefix.
	Depth int
}

const bucketWidth = 2

func (l BucketLayout) Version() int { return 1 }

func (l BucketLayout) Path(catalog string) string {
	depth := l.Depth
	if depth < 1 {
		depth = 1
	}
	segments := make([]string, 0, depth+2)
	segments = append(segments, AlbumDir)
	for i := 0; i < depth; i++ {
		start := i * bucketWidth
		if start >= len(catalog) {
			break
		}
		end := start + bucketWidth
		if end > len(catalog) {
			end = len(catalog)
		}
		segments = append(segments, catalog[start:end])
	}
	segments = append(segments, catalog+DocumentExt)
	return path.Join(segments...)
}

// ForVersion returns the layout policy recorded under the given version.
func ForVersion(version int) (Layout, error) {
	switch version {
	case 0:
		return FlatLayout{}, nil
	case 1:
		return BucketLayout{Depth: 1}, nil
	default:
		return nil, fmt.Errorf("unknown layout version %d", version)
	}
}

// FromPath derives the catalog implied by a document path. The catalog is
// carried in the file name, so the derivation is layout independent.
func FromPath(documentPath string) (string, bool) {
	base := path.Base(strings.ReplaceAll(documentPath, "\\", "/"))
	if !strings.HasSuffix(base, DocumentExt) {
		return "", false
	}
	catalog := strings.TrimSuffix(base, DocumentExt)
	if catalog == "" {
		return "", false
	}
	return catalog, true
}
