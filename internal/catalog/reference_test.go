package catalog_test

import (
	"errors"
	"testing"

	"discograph/internal/catalog"
)

func TestParseReferenceNormalizesDiscZeroAndOne(t *testing.T) {
	for _, input := range []string{"CAT-001", "CAT-001/0", "CAT-001/1"} {
		ref, err := catalog.ParseReference(input)
		if err != nil {
			t.Fatalf("ParseReference(%q) failed: %v", input, err)
		}
		if ref.Catalog != "CAT-001" || ref.Disc != 1 {
			t.Fatalf("ParseReference(%q) = %+v, expected disc 1", input, ref)
		}
	}
}

func TestParseReferenceDiscSuffix(t *testing.T) {
	ref, err := catalog.ParseReference("KSLA-0178/3")
	if err != nil {
		t.Fatalf("ParseReference failed: %v", err)
	}
	if ref.Disc != 3 {
		t.Fatalf("expected disc 3, got %d", ref.Disc)
	}
}

func TestParseReferenceRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"CAT-001/x", "CAT-001/-1", "CAT-001/1/2", "cat-001/1", "CAT-001/"} {
		if _, err := catalog.ParseReference(input); !errors.Is(err, catalog.ErrInvalidReference) {
			t.Fatalf("ParseReference(%q): expected ErrInvalidReference, got %v", input, err)
		}
	}
}

func TestReferenceStringBijection(t *testing.T) {
	for disc := 1; disc <= 5; disc++ {
		ref := catalog.Reference{Catalog: "KSLA-0178", Disc: disc}
		parsed, err := catalog.ParseReference(ref.String())
		if err != nil {
			t.Fatalf("ParseReference(%q) failed: %v", ref.String(), err)
		}
		if parsed != ref {
			t.Fatalf("round trip mismatch: %+v != %+v", parsed, ref)
		}
	}
}
