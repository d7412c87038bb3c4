package database_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"discograph/internal/database"
	"discograph/internal/repo"
	"discograph/internal/testsupport"
)

func titles(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + string(rune('A'+i))
	}
	return out
}

func scenarioRepo(t *testing.T) string {
	t.Helper()
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001",
		titles("Track ", 5), titles("Bonus ", 6)))
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-002",
		titles("Song ", 8)))
	return root
}

func TestCompileScenarioCounts(t *testing.T) {
	root := scenarioRepo(t)
	tree := testsupport.LoadTree(t, root)
	path := filepath.Join(t.TempDir(), "repo.db")

	report, err := database.Compile(context.Background(), tree, path, database.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if report.Albums != 2 || report.Discs != 3 || report.Tracks != 19 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	albums, discs, tracks, err := db.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if albums != 2 || discs != 3 || tracks != 19 {
		t.Fatalf("counts = %d/%d/%d, want 2/3/19", albums, discs, tracks)
	}

	meta, err := db.Meta(context.Background())
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if meta.Name != "test-repo" || meta.FormatVersion != repo.CurrentFormatVersion {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestCompileResolvesInheritedFields(t *testing.T) {
	root := scenarioRepo(t)
	tree := testsupport.LoadTree(t, root)
	path := filepath.Join(t.TempDir(), "repo.db")
	if _, err := database.Compile(context.Background(), tree, path, database.Options{}); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	row, err := db.Album(context.Background(), "CAT-001")
	if err != nil {
		t.Fatalf("Album failed: %v", err)
	}
	if row.Title != "Album CAT-001" || row.Artist != "Test Artist" || row.ReleaseDate != "2024-06-01" {
		t.Fatalf("unexpected album row: %+v", row)
	}

	trackRows, err := db.Tracks(context.Background())
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	for _, tr := range trackRows {
		// Tracks in the fixtures name no artist or type of their own, so the
		// snapshot must carry the album-level values down.
		if tr.Artist != "Test Artist" || tr.Type != "normal" {
			t.Fatalf("inheritance not resolved: %+v", tr)
		}
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	root := scenarioRepo(t)
	path := filepath.Join(t.TempDir(), "repo.db")

	var dumps [2][]database.TrackRow
	for i := range dumps {
		tree := testsupport.LoadTree(t, root)
		if _, err := database.Compile(context.Background(), tree, path, database.Options{}); err != nil {
			t.Fatalf("compile %d failed: %v", i, err)
		}
		db, err := database.Open(path)
		if err != nil {
			t.Fatalf("open %d failed: %v", i, err)
		}
		rows, err := db.Tracks(context.Background())
		db.Close()
		if err != nil {
			t.Fatalf("dump %d failed: %v", i, err)
		}
		dumps[i] = rows
	}
	if !reflect.DeepEqual(dumps[0], dumps[1]) {
		t.Fatal("two compiles of an unchanged tree produced different row sets")
	}
}

func TestCompileExcludesBrokenAlbums(t *testing.T) {
	root := scenarioRepo(t)
	testsupport.WriteDocument(t, root, "CAT-000", []byte("[album\nbroken"))
	tree := testsupport.LoadTree(t, root)
	path := filepath.Join(t.TempDir(), "repo.db")

	report, err := database.Compile(context.Background(), tree, path, database.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if report.Albums != 2 || report.Skipped != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Excluded) != 1 || report.Excluded[0].Catalog != "CAT-000" {
		t.Fatalf("unexpected exclusions: %+v", report.Excluded)
	}
}

func TestCompileStrictFailsOnExclusion(t *testing.T) {
	root := scenarioRepo(t)
	testsupport.WriteDocument(t, root, "CAT-000", []byte("[album\nbroken"))
	tree := testsupport.LoadTree(t, root)
	path := filepath.Join(t.TempDir(), "repo.db")

	_, err := database.Compile(context.Background(), tree, path, database.Options{Strict: true})
	if !errors.Is(err, database.ErrStrictViolation) {
		t.Fatalf("err = %v, want ErrStrictViolation", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("failed strict compile should not publish a snapshot")
	}
}

func TestCompileExcludesAlbumsWithoutID(t *testing.T) {
	root := scenarioRepo(t)
	legacy := testsupport.SampleAlbum("CAT-003")
	legacy.ID = ""
	testsupport.WriteAlbum(t, root, legacy)
	tree := testsupport.LoadTree(t, root)
	path := filepath.Join(t.TempDir(), "repo.db")

	report, err := database.Compile(context.Background(), tree, path, database.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if report.Skipped != 1 || report.Excluded[0].Catalog != "CAT-003" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestCompileReplacesExistingSnapshot(t *testing.T) {
	root := scenarioRepo(t)
	path := filepath.Join(t.TempDir(), "repo.db")

	tree := testsupport.LoadTree(t, root)
	if _, err := database.Compile(context.Background(), tree, path, database.Options{}); err != nil {
		t.Fatalf("first compile failed: %v", err)
	}

	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-005", titles("Extra ", 2)))
	tree = testsupport.LoadTree(t, root)
	if _, err := database.Compile(context.Background(), tree, path, database.Options{}); err != nil {
		t.Fatalf("second compile failed: %v", err)
	}

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	albums, _, _, err := db.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if albums != 3 {
		t.Fatalf("albums = %d, want 3", albums)
	}
}
