package bank

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameKey canonicalizes a bank name for identity comparison. The merge
// engine takes one as a parameter so the matching strategy can be swapped.
type NameKey func(string) string

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName is the default identity key: decompose, strip combining
// marks, lowercase, keep only [a-z0-9]. Deliberately lossy — "Crédit
// Agricole" and "Credit-Agricole!" collapse to the same key, trading
// false-positive dedup for never missing a duplicate in scraped lists.
func NormalizeName(name string) string {
	ascii, _, _ := transform.String(stripAccents, name)
	lower := strings.ToLower(ascii)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
