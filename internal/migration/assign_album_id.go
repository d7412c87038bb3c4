package migration

import (
	"github.com/google/uuid"

	"discograph/internal/album"
)

// assignAlbumID gives a fresh unique identifier to any album lacking one.
// Albums that already carry an album_id are left untouched, so re-running
// the migration never reassigns an identity.
func assignAlbumID(a *album.Album) (bool, error) {
	if a.ID != "" {
		return false, nil
	}
	a.ID = uuid.NewString()
	return true, nil
}
