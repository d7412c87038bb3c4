package migration

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"discograph/internal/album"
	"discograph/internal/repo"
)

// Report summarizes one migration run.
type Report struct {
	From     int
	To       int
	Checked  int
	Migrated int
	Failed   int
	Failures []Failure
}

// Failure records one album whose migration was skipped.
type Failure struct {
	Catalog string
	Err     error
}

// Options tunes a migration run.
type Options struct {
	// Target is the format version to migrate to; 0 means the current
	// version this build supports.
	Target int
	// DryRun renders unified diffs of would-be changes to Diff instead
	// of rewriting documents or bumping the manifest.
	DryRun bool
	Diff   io.Writer
}

// Run applies every pending migration to every album in the tree. Albums
// that fail are recorded and skipped; the run continues. Unless DryRun is
// set, changed documents are rewritten in place and the manifest version is
// bumped to the target.
func Run(ctx context.Context, tree *repo.Tree, opts Options) (Report, error) {
	target := opts.Target
	if target == 0 {
		target = repo.CurrentFormatVersion
	}
	current := tree.Manifest.Repo.Version
	report := Report{From: current, To: target}
	if target < current {
		return report, fmt.Errorf("target version %d is below repository version %d", target, current)
	}

	pending := Pending(current, target)
	for _, entry := range tree.Entries() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		if entry.Err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Catalog: entry.Catalog, Err: entry.Err})
			continue
		}

		changed, err := applyAll(pending, entry.Album)
		if err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Catalog: entry.Catalog, Err: err})
			continue
		}
		if !changed {
			continue
		}

		encoded, err := album.Encode(entry.Album)
		if err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Catalog: entry.Catalog, Err: err})
			continue
		}
		if bytes.Equal(encoded, entry.Raw) {
			continue
		}

		if opts.DryRun {
			if opts.Diff != nil {
				if err := writeDiff(opts.Diff, entry, encoded); err != nil {
					return report, err
				}
			}
			report.Migrated++
			continue
		}
		if err := tree.WriteAlbum(entry.Album); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Catalog: entry.Catalog, Err: err})
			continue
		}
		report.Migrated++
	}

	if !opts.DryRun && target != current {
		tree.Manifest.Repo.Version = target
		if err := repo.SaveManifest(tree.Root, tree.Manifest); err != nil {
			return report, fmt.Errorf("record format version: %w", err)
		}
	}
	return report, nil
}

func applyAll(pending []Migration, a *album.Album) (bool, error) {
	changed := false
	for _, m := range pending {
		didChange, err := m.Apply(a)
		if err != nil {
			return changed, fmt.Errorf("%s: %w", m.Name, err)
		}
		changed = changed || didChange
	}
	return changed, nil
}

func writeDiff(w io.Writer, entry *repo.Entry, after []byte) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(entry.Raw)),
		B:        difflib.SplitLines(string(after)),
		FromFile: entry.Path,
		ToFile:   entry.Path + " (migrated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("render diff for %s: %w", entry.Catalog, err)
	}
	_, err = io.WriteString(w, text)
	return err
}
