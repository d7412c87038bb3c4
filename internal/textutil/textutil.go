// Package textutil provides small text helpers shared by export, tagging,
// and validation: filename sanitizing and Unicode-normalized comparison.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeFilename makes title text safe for use as a file name. Path
// separators map to their fullwidth forms so titles stay readable; control
// characters are dropped.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "／",
		"\\", "＼",
		":", "：",
		"*", "＊",
		"?", "？",
		"\"", "＂",
		"<", "＜",
		">", "＞",
		"|", "｜",
	)
	sanitized := replacer.Replace(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, sanitized)
}

// NormalizeNFC returns the NFC form of s with surrounding space trimmed.
// Artist and title comparisons go through this so visually identical
// composed and decomposed spellings compare equal.
func NormalizeNFC(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// EqualFold reports whether two strings are equal after NFC normalization
// and Unicode case folding.
func EqualFold(a, b string) bool {
	return strings.EqualFold(NormalizeNFC(a), NormalizeNFC(b))
}
