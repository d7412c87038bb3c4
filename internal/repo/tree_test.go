package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"discograph/internal/repo"
	"discograph/internal/testsupport"
)

func TestLoadIndexesAlbums(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-002"))
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001"))

	tree := testsupport.LoadTree(t, root)
	if tree.Len() != 2 {
		t.Fatalf("expected 2 albums, got %d", tree.Len())
	}
	entries := tree.Entries()
	if entries[0].Catalog != "CAT-001" || entries[1].Catalog != "CAT-002" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Catalog, entries[1].Catalog)
	}
	if _, ok := tree.Album("CAT-001"); !ok {
		t.Fatal("expected CAT-001 in index")
	}
}

func TestEntriesUseNumericOrdering(t *testing.T) {
	root := testsupport.NewRepo(t)
	for _, cat := range []string{"CAT-10", "CAT-2", "CAT-1"} {
		testsupport.WriteAlbum(t, root, testsupport.SampleAlbum(cat))
	}
	tree := testsupport.LoadTree(t, root)
	var got []string
	for _, entry := range tree.Entries() {
		got = append(got, entry.Catalog)
	}
	want := []string{"CAT-1", "CAT-2", "CAT-10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestLoadRecordsDecodeFailures(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001"))
	testsupport.WriteDocument(t, root, "CAT-002", []byte("[album\nbroken"))

	tree := testsupport.LoadTree(t, root)
	entry, ok := tree.Album("CAT-002")
	if !ok {
		t.Fatal("expected broken document to be indexed")
	}
	if entry.Err == nil || entry.Album != nil {
		t.Fatalf("expected decode failure recorded, got %+v", entry)
	}
}

func TestLoadMissingManifestFails(t *testing.T) {
	if _, err := repo.Load(context.Background(), t.TempDir(), repo.Options{}); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadHonorsCancellation(t *testing.T) {
	root := testsupport.NewRepo(t)
	for _, cat := range []string{"CAT-001", "CAT-002", "CAT-003"} {
		testsupport.WriteAlbum(t, root, testsupport.SampleAlbum(cat))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Load(ctx, root, repo.Options{Workers: 1}); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestAddAlbumRejectsExisting(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001"))
	tree := testsupport.LoadTree(t, root)

	if err := tree.AddAlbum(testsupport.SampleAlbum("CAT-001")); err == nil {
		t.Fatal("expected ErrAlbumExists")
	}
	if err := tree.AddAlbum(testsupport.SampleAlbum("CAT-002")); err != nil {
		t.Fatalf("AddAlbum failed: %v", err)
	}
	if tree.Len() != 2 {
		t.Fatalf("expected 2 albums after add, got %d", tree.Len())
	}
}

func TestWriteAlbumRewritesDocument(t *testing.T) {
	root := testsupport.NewRepo(t)
	sample := testsupport.SampleAlbum("CAT-001")
	testsupport.WriteAlbum(t, root, sample)
	tree := testsupport.LoadTree(t, root)

	entry, _ := tree.Album("CAT-001")
	modified := *entry.Album
	modified.Edition = "Remaster"
	if err := tree.WriteAlbum(&modified); err != nil {
		t.Fatalf("WriteAlbum failed: %v", err)
	}

	onDisk, err := os.ReadFile(tree.AbsPath(entry))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(onDisk) != string(entry.Raw) {
		t.Fatal("entry raw bytes out of sync with disk")
	}
	reloaded := testsupport.LoadTree(t, root)
	again, _ := reloaded.Album("CAT-001")
	if again.Album.Edition != "Remaster" {
		t.Fatalf("edition not persisted: %q", again.Album.Edition)
	}
}

func TestDocumentPathFollowsLayout(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("KSLA-0178"))
	tree := testsupport.LoadTree(t, root)
	want := filepath.Join(root, "album", "KS", "KSLA-0178.toml")
	if got := tree.DocumentPath("KSLA-0178"); got != want {
		t.Fatalf("DocumentPath = %s, want %s", got, want)
	}
}
