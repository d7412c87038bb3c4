package validation_test

import (
	"testing"

	"discograph/internal/testsupport"
	"discograph/internal/validation"
)

func TestValidateRepositoryCleanTree(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001"))
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-002"))

	violations := validation.ValidateRepository(testsupport.LoadTree(t, root))
	if len(violations) != 0 {
		t.Fatalf("expected clean report, got %v", violations)
	}
}

func TestValidateRepositoryReportsEveryBrokenAlbum(t *testing.T) {
	root := testsupport.NewRepo(t)

	// Three independently broken albums plus one healthy one.
	missingID := testsupport.SampleAlbum("CAT-001")
	missingID.ID = ""
	testsupport.WriteAlbum(t, root, missingID)

	badArtist := testsupport.SampleAlbum("CAT-002")
	badArtist.Artist = "Unknown Artist"
	testsupport.WriteAlbum(t, root, badArtist)

	empty := testsupport.SampleAlbum("CAT-003")
	empty.Discs = nil
	testsupport.WriteAlbum(t, root, empty)

	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-004"))

	violations := validation.ValidateRepository(testsupport.LoadTree(t, root))
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(violations), violations)
	}
	kinds := map[string]validation.Kind{}
	for _, v := range violations {
		kinds[v.Catalog] = v.Kind
	}
	if kinds["CAT-001"] != validation.KindMissingAlbumID {
		t.Fatalf("CAT-001: %v", kinds["CAT-001"])
	}
	if kinds["CAT-002"] != validation.KindInvalidArtistName {
		t.Fatalf("CAT-002: %v", kinds["CAT-002"])
	}
	if kinds["CAT-003"] != validation.KindEmptyAlbum {
		t.Fatalf("CAT-003: %v", kinds["CAT-003"])
	}
}

func TestValidateRepositoryCatalogFilenameMismatch(t *testing.T) {
	root := testsupport.NewRepo(t)
	// Store CAT-003's document where CAT-004's should live.
	testsupport.WriteAlbumAt(t, root, testsupport.SampleAlbum("CAT-003"), "CAT-004")

	violations := validation.ValidateRepository(testsupport.LoadTree(t, root))
	mismatches := 0
	for _, v := range violations {
		if v.Kind == validation.KindCatalogFilenameMismatch {
			mismatches++
			if v.Catalog != "CAT-003" {
				t.Fatalf("mismatch reported for %s", v.Catalog)
			}
		}
	}
	if mismatches != 1 {
		t.Fatalf("expected exactly one filename mismatch, got %d: %v", mismatches, violations)
	}
}

func TestValidateRepositoryReportsDecodeFailures(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteDocument(t, root, "CAT-001", []byte("not toml at all ["))

	violations := validation.ValidateRepository(testsupport.LoadTree(t, root))
	if len(violations) != 1 || violations[0].Kind != validation.KindDecodeFailure {
		t.Fatalf("expected one decode failure, got %v", violations)
	}
}

func TestValidateRepositoryCompilationRules(t *testing.T) {
	root := testsupport.NewRepo(t)
	va := testsupport.SampleAlbum("CAT-001", []string{"Opening", "Ending"})
	va.Artist = "Various Artists"
	va.Discs[0].Tracks[0].Artist = "Singer A"
	// Second track inherits the placeholder album artist.
	testsupport.WriteAlbum(t, root, va)

	violations := validation.ValidateRepository(testsupport.LoadTree(t, root))
	if len(violations) != 1 {
		t.Fatalf("expected one violation, got %v", violations)
	}
	v := violations[0]
	if v.Kind != validation.KindInvalidArtistName || v.Disc != 1 || v.Track != 2 {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestValidateCandidateRejectsDuplicateCatalog(t *testing.T) {
	root := testsupport.NewRepo(t)
	testsupport.WriteAlbum(t, root, testsupport.SampleAlbum("CAT-001"))
	tree := testsupport.LoadTree(t, root)

	violations := validation.ValidateCandidate(testsupport.SampleAlbum("CAT-001"), "", tree)
	if len(violations) != 1 || violations[0].Kind != validation.KindAlbumAlreadyExists {
		t.Fatalf("expected album-already-exists, got %v", violations)
	}
}

func TestValidateCandidateSourceDirMismatch(t *testing.T) {
	root := testsupport.NewRepo(t)
	tree := testsupport.LoadTree(t, root)

	candidate := testsupport.SampleAlbum("CAT-001")
	violations := validation.ValidateCandidate(candidate, "/imports/[CAT-002] Some Other Album", tree)
	mismatches := 0
	for _, v := range violations {
		if v.Kind == validation.KindAlbumInfoMismatch {
			mismatches++
		}
	}
	if mismatches != 2 {
		t.Fatalf("expected catalog and title mismatches, got %v", violations)
	}

	clean := validation.ValidateCandidate(candidate, "/imports/[CAT-001] "+candidate.Title, tree)
	if len(clean) != 0 {
		t.Fatalf("expected clean candidate, got %v", clean)
	}
}
