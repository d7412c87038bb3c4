package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"discograph/internal/catalog"
	"discograph/internal/fileutil"
)

// ManifestName is the repository manifest file at the repository root.
const ManifestName = "repo.toml"

// CurrentFormatVersion is the repository format version this build
// understands. Repositories below it need migration.
const CurrentFormatVersion = 1

// Manifest records repository-wide settings committed alongside the albums.
type Manifest struct {
	Repo ManifestRepo `toml:"repo"`
}

// ManifestRepo is the [repo] table of the manifest.
type ManifestRepo struct {
	Name    string `toml:"name"`
	Edition string `toml:"edition,omitempty"`
	Version int    `toml:"version"`
	Layout  int    `toml:"layout"`
}

// NewManifest returns a manifest for a freshly initialized repository.
func NewManifest(name string) *Manifest {
	return &Manifest{Repo: ManifestRepo{
		Name:    name,
		Version: CurrentFormatVersion,
		Layout:  1,
	}}
}

// Layout resolves the layout policy the manifest records.
func (m *Manifest) Layout() (catalog.Layout, error) {
	return catalog.ForVersion(m.Repo.Layout)
}

// LoadManifest reads the manifest from the repository root.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: not a metadata repository (missing %s)", root, ManifestName)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if manifest.Repo.Name == "" {
		return nil, fmt.Errorf("manifest %s: repo.name is required", path)
	}
	if _, err := manifest.Layout(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// SaveManifest writes the manifest back to the repository root.
func SaveManifest(root string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return fileutil.WriteFileAtomic(filepath.Join(root, ManifestName), data, 0o644)
}

// Init creates an empty repository at root with a fresh manifest and album
// directory.
func Init(root, name string) error {
	if fileutil.Exists(filepath.Join(root, ManifestName)) {
		return fmt.Errorf("repository already initialized at %s", root)
	}
	if err := os.MkdirAll(filepath.Join(root, catalog.AlbumDir), 0o755); err != nil {
		return fmt.Errorf("create album directory: %w", err)
	}
	return SaveManifest(root, NewManifest(name))
}
