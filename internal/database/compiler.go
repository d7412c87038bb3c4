package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"discograph/internal/repo"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current snapshot schema version. Bump this when the
// schema changes; stale snapshots are rejected on open and must be recompiled.
const schemaVersion = 1

// ErrSnapshotLocked indicates another compile holds the snapshot lock.
var ErrSnapshotLocked = errors.New("snapshot is locked by another compile")

// ErrStrictViolation indicates a strict compile excluded at least one album.
var ErrStrictViolation = errors.New("albums excluded from strict compile")

// Exclusion records one album left out of the snapshot.
type Exclusion struct {
	Catalog string
	Err     error
}

// Report summarizes one compile.
type Report struct {
	Albums   int
	Discs    int
	Tracks   int
	Skipped  int
	Excluded []Exclusion
}

// Options tunes a compile.
type Options struct {
	// Strict fails the whole compile if any album would be excluded.
	Strict bool
}

// Compile serializes the tree into a SQLite snapshot at path. The snapshot
// is built in a temporary file and renamed into place only on success;
// a lock file next to the target serializes concurrent compiles.
func Compile(ctx context.Context, tree *repo.Tree, path string, opts Options) (Report, error) {
	var report Report

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return report, fmt.Errorf("create snapshot directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire snapshot lock: %w", err)
	}
	if !ok {
		return report, ErrSnapshotLocked
	}
	defer func() { _ = lock.Unlock() }()

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	db, err := sql.Open("sqlite", tmpPath)
	if err != nil {
		return report, fmt.Errorf("open snapshot db: %w", err)
	}
	report, err = build(ctx, db, tree, opts)
	if closeErr := db.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close snapshot db: %w", closeErr)
	}
	if err != nil {
		return report, err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return report, fmt.Errorf("publish snapshot: %w", err)
	}
	return report, nil
}

func build(ctx context.Context, db *sql.DB, tree *repo.Tree, opts Options) (Report, error) {
	var report Report

	for _, pragma := range []string{
		"PRAGMA journal_mode=OFF",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return report, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return report, fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return report, fmt.Errorf("record schema version: %w", err)
	}
	meta := tree.Manifest.Repo
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO repo_meta (name, edition, format_version, layout_version) VALUES (?, ?, ?, ?)",
		meta.Name, meta.Edition, meta.Version, meta.Layout,
	); err != nil {
		return report, fmt.Errorf("record repository metadata: %w", err)
	}

	// Entries are already in deterministic catalog order, so generated disc
	// and track row ids are stable across compiles of an unchanged tree.
	for _, entry := range tree.Entries() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if entry.Err != nil {
			report.Skipped++
			report.Excluded = append(report.Excluded, Exclusion{Catalog: entry.Catalog, Err: entry.Err})
			continue
		}
		if entry.Album.ID == "" {
			report.Skipped++
			report.Excluded = append(report.Excluded, Exclusion{
				Catalog: entry.Catalog,
				Err:     errors.New("album has no album_id; run migrate first"),
			})
			continue
		}
		if err := insertAlbum(ctx, tx, entry, &report); err != nil {
			return report, fmt.Errorf("insert %s: %w", entry.Catalog, err)
		}
	}

	if opts.Strict && report.Skipped > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrStrictViolation, report.Skipped, tree.Len())
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit snapshot: %w", err)
	}
	return report, nil
}

func insertAlbum(ctx context.Context, tx *sql.Tx, entry *repo.Entry, report *Report) error {
	a := entry.Album
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO albums (album_id, catalog, title, edition, artist, release_date, album_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Catalog, a.Title, a.Edition, a.Artist, a.Date.String(), string(a.DefaultType()),
	); err != nil {
		return fmt.Errorf("album row: %w", err)
	}
	report.Albums++

	for _, disc := range a.DiscViews() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO discs (album_id, disc_index, catalog, title, artist, disc_type)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, disc.Index(), disc.Catalog(), disc.Title(), disc.Artist(), string(disc.Type()),
		)
		if err != nil {
			return fmt.Errorf("disc %d row: %w", disc.Index(), err)
		}
		discID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("disc %d id: %w", disc.Index(), err)
		}
		report.Discs++

		for _, track := range disc.Tracks() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tracks (disc_id, track_index, title, artist, track_type)
				 VALUES (?, ?, ?, ?, ?)`,
				discID, track.Index(), track.Title(), track.Artist(), string(track.Type()),
			); err != nil {
				return fmt.Errorf("disc %d track %d row: %w", disc.Index(), track.Index(), err)
			}
			report.Tracks++
		}
	}
	return nil
}
