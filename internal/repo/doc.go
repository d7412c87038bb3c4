// Package repo builds the in-memory index over a metadata repository: the
// manifest (repo.toml) and every album document under the album directory.
//
// The tree is rebuilt from disk on every command invocation; it is never
// persisted as a cache. Documents are decoded in parallel, and entries that
// fail to decode or collide on a catalog are recorded in the tree rather
// than dropped, so validation can report them. Once built, the tree is
// read-only for the duration of a validation or compile pass; operations
// that rewrite documents (migration, import) go through WriteAlbum and the
// caller rebuilds before compiling again.
package repo
