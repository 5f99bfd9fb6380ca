// Package textnorm folds Portuguese product text for accent and case
// insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Language is the tag used for case mapping.
var Language = language.BrazilianPortuguese

var stopwords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {}, "e": {}, "de": {}, "da": {}, "do": {},
	"das": {}, "dos": {}, "em": {}, "na": {}, "no": {}, "nas": {}, "nos": {},
	"com": {}, "para": {}, "por": {}, "um": {}, "uma": {},
}

// Fold lowercases s and strips diacritics: "Tênis Calção" becomes
// "tenis calcao".
func Fold(s string) string {
	// Transformers and casers carry state and are built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Lower(Language).String(out)
}

// Tokens returns the distinct folded words of s, without stopwords, in order
// of first appearance.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Searchable returns the folded tokens of s joined by single spaces, the form
// stored alongside product names for substring search.
func Searchable(s string) string {
	return " " + strings.Join(Tokens(s), " ") + " "
}
