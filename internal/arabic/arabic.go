// Package arabic canonicalizes Arabic and Maghrebi-dialect text for lexical
// matching. Query text and corpus text must both pass through Normalize with
// the same table, otherwise substring matches are not symmetric.
package arabic

import "strings"

// replacer collapses orthographic variants to one canonical form, then maps
// dialect letters used in colloquial spelling to their standard Arabic
// equivalents. The table is fixed; changing it silently breaks matches
// against already-stored metadata.
var replacer = strings.NewReplacer(
	// Hamza-carrying alef variants.
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
	// Taa marbuta and alef maqsura.
	"ة", "ه",
	"ى", "ي",
	// Hamza seats.
	"ؤ", "و",
	"ئ", "ي",
	// Tatweel (kashida) carries no meaning.
	"ـ", "",
	// Dialect letters common in Maghrebi/colloquial spellings.
	"گ", "ك",
	"ڭ", "ك",
	"چ", "ج",
	"پ", "ب",
	"ڤ", "ف",
	"ڥ", "ف",
	"ڨ", "ق",
)

// Diacritic range (fathatan through sukun) stripped after substitution.
const (
	diacriticLow  = 'ً'
	diacriticHigh = 'ْ'
)

// Normalize returns the canonical form of s. It is pure, total, and
// idempotent; empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = replacer.Replace(s)

	s = strings.Map(func(r rune) rune {
		if r >= diacriticLow && r <= diacriticHigh {
			return -1
		}

		return r
	}, s)

	return strings.TrimSpace(s)
}
