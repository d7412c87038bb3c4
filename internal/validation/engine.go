package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"discograph/internal/album"
	"discograph/internal/repo"
	"discograph/internal/textutil"
)

// ValidateRepository runs every registered rule on every album in the tree
// and returns the complete, sorted report. A broken album never prevents
// the others from being checked.
func ValidateRepository(tree *repo.Tree) []Violation {
	var out []Violation

	for _, dup := range tree.Duplicates {
		out = append(out, Violation{
			Kind:    KindDuplicateCatalog,
			Catalog: dup.Catalog,
			Detail:  fmt.Sprintf("second document for catalog at %s", dup.Path),
		})
	}

	rules := Rules()
	for _, entry := range tree.Entries() {
		if entry.Err != nil {
			out = append(out, Violation{
				Kind:    KindDecodeFailure,
				Catalog: entry.Catalog,
				Detail:  entry.Err.Error(),
			})
			continue
		}
		for _, rule := range rules {
			out = append(out, rule.Check(entry, tree)...)
		}
	}

	sortViolations(out)
	return out
}

// ValidateAlbum runs the registered rules on a single decoded album, for
// example after an in-place edit of its document.
func ValidateAlbum(a *album.Album, tree *repo.Tree) []Violation {
	entry := &repo.Entry{
		Catalog: a.Catalog,
		Path:    tree.Layout().Path(a.Catalog),
		Album:   a,
	}

	var out []Violation
	for _, rule := range Rules() {
		out = append(out, rule.Check(entry, tree)...)
	}
	sortViolations(out)
	return out
}

// ValidateCandidate checks an album that is about to be imported. Beyond
// the repository rules it enforces catalog uniqueness against the existing
// tree and, when sourceDir is set, consistency between the source directory
// name and the candidate's identity.
func ValidateCandidate(candidate *album.Album, sourceDir string, tree *repo.Tree) []Violation {
	entry := &repo.Entry{
		Catalog: candidate.Catalog,
		Path:    tree.Layout().Path(candidate.Catalog),
		Album:   candidate,
	}

	var out []Violation
	if _, exists := tree.Album(candidate.Catalog); exists {
		out = append(out, Violation{
			Kind:    KindAlbumAlreadyExists,
			Catalog: candidate.Catalog,
			Detail:  "catalog already present in repository",
		})
	}
	out = append(out, checkSourceDir(candidate, sourceDir)...)

	for _, rule := range Rules() {
		out = append(out, rule.Check(entry, tree)...)
	}

	sortViolations(out)
	return out
}

// sourceDirPattern matches the "[CATALOG] Title" directory naming
// convention used for album source folders.
var sourceDirPattern = regexp.MustCompile(`^\[([^\]]+)\] (.+)$`)

func checkSourceDir(candidate *album.Album, sourceDir string) []Violation {
	if sourceDir == "" {
		return nil
	}
	name := filepath.Base(filepath.Clean(sourceDir))
	match := sourceDirPattern.FindStringSubmatch(name)
	if match == nil {
		// Directories outside the convention carry no identity to check.
		return nil
	}
	var out []Violation
	if match[1] != candidate.Catalog {
		out = append(out, Violation{
			Kind:    KindAlbumInfoMismatch,
			Catalog: candidate.Catalog,
			Detail:  fmt.Sprintf("source directory names catalog %s but candidate declares %s", match[1], candidate.Catalog),
		})
	}
	dirTitle := strings.TrimSpace(match[2])
	if !textutil.EqualFold(dirTitle, candidate.Title) && !textutil.EqualFold(dirTitle, textutil.SanitizeFilename(candidate.Title)) {
		out = append(out, Violation{
			Kind:    KindAlbumInfoMismatch,
			Catalog: candidate.Catalog,
			Detail:  fmt.Sprintf("source directory title %q does not match candidate title %q", dirTitle, candidate.Title),
		})
	}
	return out
}
