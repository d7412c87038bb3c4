package tagging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"discograph/internal/tagging"
	"discograph/internal/testsupport"
)

type recordingWriter struct {
	written []tagging.Action
	fail    bool
}

func (w *recordingWriter) WriteTags(_ context.Context, path string, tags tagging.TrackTags) error {
	if w.fail {
		return os.ErrPermission
	}
	w.written = append(w.written, tagging.Action{Path: path, Tags: tags})
	return nil
}

func writeAudioDir(t *testing.T, discs ...[]string) string {
	t.Helper()
	root := t.TempDir()
	if len(discs) == 1 {
		writeFiles(t, root, discs[0])
		return root
	}
	for i, names := range discs {
		dir := filepath.Join(root, string(rune('1'+i)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		writeFiles(t, dir, names)
	}
	return root
}

func writeFiles(t *testing.T, dir string, names []string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("flac"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
}

func TestApplyWritesResolvedTags(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-001", []string{"First", "Second"})
	dir := writeAudioDir(t, []string{"01. First.flac", "02. Second.flac"})

	writer := &recordingWriter{}
	report, err := tagging.Apply(context.Background(), a, dir, writer, tagging.Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.Written != 2 || len(writer.written) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	first := writer.written[0].Tags
	if first.Title != "First" || first.Artist != "Test Artist" || first.TrackNumber != 1 || first.TrackTotal != 2 {
		t.Fatalf("unexpected tags: %+v", first)
	}
	if first.AlbumID != a.ID || first.Catalog != "APPLY-001" || first.Date != "2024-06-01" {
		t.Fatalf("unexpected album tags: %+v", first)
	}
}

func TestApplyMultiDisc(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-002", []string{"One"}, []string{"Two", "Three"})
	dir := writeAudioDir(t,
		[]string{"01. One.flac"},
		[]string{"01. Two.flac", "02. Three.flac"})

	report, err := tagging.Apply(context.Background(), a, dir, &recordingWriter{}, tagging.Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(report.Planned) != 3 {
		t.Fatalf("planned %d actions, want 3", len(report.Planned))
	}
	last := report.Planned[2].Tags
	if last.DiscNumber != 2 || last.DiscTotal != 2 || last.TrackNumber != 2 {
		t.Fatalf("unexpected disc numbering: %+v", last)
	}
}

func TestApplyDryRunSkipsWriter(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-003", []string{"Only"})
	dir := writeAudioDir(t, []string{"01. Only.flac"})

	writer := &recordingWriter{fail: true}
	report, err := tagging.Apply(context.Background(), a, dir, writer, tagging.Options{DryRun: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.Written != 0 || len(report.Planned) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestApplyWorksWithoutWriter(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-004", []string{"Only"})
	dir := writeAudioDir(t, []string{"01. Only.flac"})

	report, err := tagging.Apply(context.Background(), a, dir, nil, tagging.Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.Written != 0 || len(report.Planned) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestApplyRejectsTrackCountMismatch(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-005", []string{"One", "Two"})
	dir := writeAudioDir(t, []string{"01. One.flac"})

	if _, err := tagging.Apply(context.Background(), a, dir, &recordingWriter{}, tagging.Options{}); err == nil {
		t.Fatal("expected error for track count mismatch")
	}
}

func TestApplyRejectsDiscCountMismatch(t *testing.T) {
	a := testsupport.SampleAlbum("APPLY-006", []string{"One"}, []string{"Two"})
	dir := writeAudioDir(t, []string{"01. One.flac"})

	if _, err := tagging.Apply(context.Background(), a, dir, &recordingWriter{}, tagging.Options{}); err == nil {
		t.Fatal("expected error for disc count mismatch")
	}
}
