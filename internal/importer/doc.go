// Package importer builds candidate albums from audio source directories
// and admits them into a repository. A candidate that fails validation is
// rejected whole; the repository is never left half-updated by an import.
package importer
