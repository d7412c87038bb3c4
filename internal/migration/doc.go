// Package migration applies ordered, idempotent schema transformations to
// album documents that predate the current repository format version.
//
// Each migration owns one format version. Running a repository at version N
// toward target M applies every migration in (N, M] to every album, in
// order. Migrations must be no-ops on already-compliant documents: an album
// a transformation does not need to touch is left byte-identical on disk.
// One album's failure is recorded and skipped; the run always covers the
// whole repository.
package migration
