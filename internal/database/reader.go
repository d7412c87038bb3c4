package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrAlbumNotFound indicates the snapshot has no row for the catalog.
var ErrAlbumNotFound = errors.New("album not found in snapshot")

// ErrSchemaMismatch indicates the snapshot was built by an incompatible
// version and must be recompiled.
var ErrSchemaMismatch = errors.New("snapshot schema version mismatch")

// DB is a read-only handle on a compiled snapshot.
type DB struct {
	db   *sql.DB
	path string
}

// AlbumRow is one row of the albums table.
type AlbumRow struct {
	AlbumID     string
	Catalog     string
	Title       string
	Edition     string
	Artist      string
	ReleaseDate string
	Type        string
}

// DiscRow is one row of the discs table.
type DiscRow struct {
	AlbumID   string
	DiscIndex int
	Catalog   string
	Title     string
	Artist    string
	Type      string
}

// Meta is the repo_meta row recorded at compile time.
type Meta struct {
	Name          string
	Edition       string
	FormatVersion int
	LayoutVersion int
}

// TrackRow is one row of the tracks table, joined to its disc position.
type TrackRow struct {
	AlbumID    string
	DiscIndex  int
	TrackIndex int
	Title      string
	Artist     string
	Type       string
}

// Open connects to an existing snapshot and verifies its schema version.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read snapshot schema version: %w", err)
	}
	if version != schemaVersion {
		_ = db.Close()
		return nil, fmt.Errorf("%w: snapshot has version %d, expected %d (recompile the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return &DB{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Counts returns the number of album, disc, and track rows.
func (d *DB) Counts(ctx context.Context) (albums, discs, tracks int, err error) {
	if err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM albums").Scan(&albums); err != nil {
		return 0, 0, 0, fmt.Errorf("count albums: %w", err)
	}
	if err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM discs").Scan(&discs); err != nil {
		return 0, 0, 0, fmt.Errorf("count discs: %w", err)
	}
	if err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracks").Scan(&tracks); err != nil {
		return 0, 0, 0, fmt.Errorf("count tracks: %w", err)
	}
	return albums, discs, tracks, nil
}

// Meta returns the repository metadata the snapshot was compiled from.
func (d *DB) Meta(ctx context.Context) (Meta, error) {
	var meta Meta
	err := d.db.QueryRowContext(ctx,
		"SELECT name, edition, format_version, layout_version FROM repo_meta LIMIT 1",
	).Scan(&meta.Name, &meta.Edition, &meta.FormatVersion, &meta.LayoutVersion)
	if err != nil {
		return Meta{}, fmt.Errorf("read repository metadata: %w", err)
	}
	return meta, nil
}

// Album returns the album row for a catalog.
func (d *DB) Album(ctx context.Context, catalog string) (AlbumRow, error) {
	var row AlbumRow
	err := d.db.QueryRowContext(ctx,
		`SELECT album_id, catalog, title, edition, artist, release_date, album_type
		 FROM albums WHERE catalog = ?`, catalog,
	).Scan(&row.AlbumID, &row.Catalog, &row.Title, &row.Edition, &row.Artist, &row.ReleaseDate, &row.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return AlbumRow{}, fmt.Errorf("%w: %s", ErrAlbumNotFound, catalog)
	}
	if err != nil {
		return AlbumRow{}, fmt.Errorf("query album %s: %w", catalog, err)
	}
	return row, nil
}

// Albums returns every album row ordered by catalog.
func (d *DB) Albums(ctx context.Context) ([]AlbumRow, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT album_id, catalog, title, edition, artist, release_date, album_type
		 FROM albums ORDER BY catalog`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var out []AlbumRow
	for rows.Next() {
		var row AlbumRow
		if err := rows.Scan(&row.AlbumID, &row.Catalog, &row.Title, &row.Edition,
			&row.Artist, &row.ReleaseDate, &row.Type); err != nil {
			return nil, fmt.Errorf("scan album row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Discs returns every disc row ordered by album and disc index.
func (d *DB) Discs(ctx context.Context) ([]DiscRow, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT d.album_id, d.disc_index, d.catalog, d.title, d.artist, d.disc_type
		 FROM discs d JOIN albums a ON a.album_id = d.album_id
		 ORDER BY a.catalog, d.disc_index`)
	if err != nil {
		return nil, fmt.Errorf("query discs: %w", err)
	}
	defer rows.Close()

	var out []DiscRow
	for rows.Next() {
		var row DiscRow
		if err := rows.Scan(&row.AlbumID, &row.DiscIndex, &row.Catalog,
			&row.Title, &row.Artist, &row.Type); err != nil {
			return nil, fmt.Errorf("scan disc row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Tracks returns every track row ordered by album, disc, and track index.
func (d *DB) Tracks(ctx context.Context) ([]TrackRow, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT d.album_id, d.disc_index, t.track_index, t.title, t.artist, t.track_type
		 FROM tracks t
		 JOIN discs d ON d.id = t.disc_id
		 JOIN albums a ON a.album_id = d.album_id
		 ORDER BY a.catalog, d.disc_index, t.track_index`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var out []TrackRow
	for rows.Next() {
		var row TrackRow
		if err := rows.Scan(&row.AlbumID, &row.DiscIndex, &row.TrackIndex,
			&row.Title, &row.Artist, &row.Type); err != nil {
			return nil, fmt.Errorf("scan track row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
