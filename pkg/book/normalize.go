package book

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizedName is the case, diacritic and whitespace insensitive form
// of an account or group name, used as a secondary lookup key.
type NormalizedName string

// Normalize lowercases a name, strips combining marks and collapses
// runs of whitespace. "Bank  Account" and "bank account" normalize to
// the same key, as do "Caisse d'Épargne" and "caisse d'epargne".
//
// If two entities in the same ledger normalize identically the index
// keeps whichever was seen last; the ledger itself still holds both.
func Normalize(name string) NormalizedName {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	return NormalizedName(strings.Join(strings.Fields(folded), " "))
}
