package catalog_test

import (
	"errors"
	"testing"

	"discograph/internal/catalog"
)

func TestValidateAcceptsCommonForms(t *testing.T) {
	for _, input := range []string{"KSLA-0178", "CAT-001", "LACM-34613", "XFD2022", "SVWC-70544-5"} {
		if err := catalog.Validate(input); err != nil {
			t.Fatalf("Validate(%q) failed: %v", input, err)
		}
	}
}

func TestValidateRejectsMalformedCatalogs(t *testing.T) {
	for _, input := range []string{"", " KSLA-0178", "ksla-0178", "KSLA--0178", "-0178", "KSLA-", "KSLA"} {
		err := catalog.Validate(input)
		if err == nil {
			t.Fatalf("Validate(%q) unexpectedly succeeded", input)
		}
		if !errors.Is(err, catalog.ErrInvalidFormat) {
			t.Fatalf("Validate(%q): expected ErrInvalidFormat, got %v", input, err)
		}
	}
}

func TestBucketLayoutPath(t *testing.T) {
	layout := catalog.BucketLayout{Depth: 1}
	if got := layout.Path("KSLA-0178"); got != "album/KS/KSLA-0178.toml" {
		t.Fatalf("unexpected path: %s", got)
	}
	deep := catalog.BucketLayout{Depth: 2}
	if got := deep.Path("KSLA-0178"); got != "album/KS/LA/KSLA-0178.toml" {
		t.Fatalf("unexpected deep path: %s", got)
	}
}

func TestBucketLayoutShortCatalog(t *testing.T) {
	layout := catalog.BucketLayout{Depth: 2}
	if got := layout.Path("AB1"); got != "album/AB/1/AB1.toml" {
		t.Fatalf("unexpected short-catalog path: %s", got)
	}
}

func TestFlatLayoutPath(t *testing.T) {
	layout := catalog.FlatLayout{}
	if got := layout.Path("CAT-001"); got != "album/CAT-001.toml" {
		t.Fatalf("unexpected flat path: %s", got)
	}
}

func TestLayoutRoundTripsThroughFromPath(t *testing.T) {
	layouts := []catalog.Layout{catalog.FlatLayout{}, catalog.BucketLayout{Depth: 1}, catalog.BucketLayout{Depth: 2}}
	for _, layout := range layouts {
		for _, cat := range []string{"KSLA-0178", "CAT-001"} {
			derived, ok := catalog.FromPath(layout.Path(cat))
			if !ok || derived != cat {
				t.Fatalf("layout v%d: FromPath(Path(%q)) = %q, %v", layout.Version(), cat, derived, ok)
			}
		}
	}
}

func TestForVersion(t *testing.T) {
	for _, version := range []int{0, 1} {
		layout, err := catalog.ForVersion(version)
		if err != nil {
			t.Fatalf("ForVersion(%d) failed: %v", version, err)
		}
		if layout.Version() != version {
			t.Fatalf("ForVersion(%d) returned layout version %d", version, layout.Version())
		}
	}
	if _, err := catalog.ForVersion(99); err == nil {
		t.Fatal("expected error for unknown layout version")
	}
}
