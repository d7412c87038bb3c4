package migration

import (
	"sort"

	"discograph/internal/album"
)

// Migration is one named, idempotent transformation tied to the format
// version that introduces it. Apply reports whether it changed the album.
type Migration struct {
	Version int
	Name    string
	Apply   func(a *album.Album) (bool, error)
}

var registry = []Migration{
	{Version: 1, Name: "assign-album-id", Apply: assignAlbumID},
}

// Registry returns every known migration ordered by version.
func Registry() []Migration {
	out := append([]Migration(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// Pending selects the migrations to run for a repository currently at
// version current, targeting target.
func Pending(current, target int) []Migration {
	var out []Migration
	for _, m := range Registry() {
		if m.Version > current && m.Version <= target {
			out = append(out, m)
		}
	}
	return out
}
