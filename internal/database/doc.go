// Package database compiles a repository tree into a relational SQLite
// snapshot for fast querying, and opens existing snapshots read-only.
//
// A compile builds the snapshot in a temporary file and renames it over the
// target only on success, so readers never observe a half-written database.
// An flock on the target path serializes concurrent compiles. Albums that
// failed to decode are excluded from the snapshot and reported; strict mode
// turns any exclusion into a compile failure instead.
package database
