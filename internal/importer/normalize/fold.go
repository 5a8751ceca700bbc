package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks (Arabic harakat included) after
// NFD decomposition and recomposes to NFC.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var arabicReplacer = strings.NewReplacer(
	"ـ", "", // tatweel
	"آ", "ا", // alef madda -> alef
	"أ", "ا", // alef hamza above -> alef
	"إ", "ا", // alef hamza below -> alef
	"ى", "ي", // alef maqsura -> yeh
	"ة", "ه", // teh marbuta -> heh
)

// Fold canonicalizes free text for table lookups: trims, lower-cases,
// collapses inner whitespace, drops diacritics and normalizes the common
// Arabic letter variants that differ between spreadsheet exports.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if out, _, err := transform.String(foldTransformer, s); err == nil {
		s = out
	}
	s = arabicReplacer.Replace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
