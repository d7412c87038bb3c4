// Package catalog defines the catalog identifier grammar and the mapping
// between catalogs and on-disk album document paths.
//
// A catalog is the primary key for a release (for example KSLA-0178). The
// Layout interface maps a catalog to the relative path of its document; the
// mapping is a pure function of the catalog string, so the same catalog
// always resolves to the same path and version-control diffs stay local to
// the changed album. Layouts are versioned so a repository can record which
// policy produced its tree.
//
// References address an album or one of its discs using the
// "CATALOG" or "CATALOG/disc" syntax. Disc suffixes 0 and 1 both mean the
// first disc.
package catalog
