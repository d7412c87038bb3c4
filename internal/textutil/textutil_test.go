package textutil_test

import (
	"testing"

	"discograph/internal/textutil"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"夏凪ぎ/宝物になった日", "夏凪ぎ／宝物になった日"},
		{"Track: A*B?", "Track： A＊B？"},
		{"plain title", "plain title"},
		{"bad\x00byte", "badbyte"},
	}
	for _, tc := range cases {
		if got := textutil.SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeNFC(t *testing.T) {
	// e + combining acute vs precomposed e-acute.
	decomposed := "Cafe\u0301"
	composed := "Caf\u00e9"
	if textutil.NormalizeNFC(decomposed) != textutil.NormalizeNFC(composed) {
		t.Fatal("expected NFC forms to match")
	}
	if textutil.NormalizeNFC("  padded  ") != "padded" {
		t.Fatal("expected surrounding space trimmed")
	}
}

func TestEqualFold(t *testing.T) {
	if !textutil.EqualFold("Various Artists", "various artists") {
		t.Fatal("expected case-folded equality")
	}
	if textutil.EqualFold("A", "B") {
		t.Fatal("unexpected equality")
	}
}
