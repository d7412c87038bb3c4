// Package export renders a single album in one of several output formats:
// the document text itself, a JSON projection, a CUE sheet for one disc,
// or bare title/artist/date lines. Rendering is a read-only projection and
// never mutates the repository.
package export
