package recipe

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Filter returns the recipes of c whose names match query. An empty query, or
// one without any words, returns c itself.
func Filter(query string, c Collection) Collection {
	folder := cases.Fold()
	words := foldAll(folder, Words(query))
	if len(words) == 0 {
		return c
	}
	return c.Filter(func(r Recipe) bool {
		return matchAll(words, foldAll(folder, Words(r.Name)))
	})
}

// MatchesWordPrefixes reports whether every word of query is a
// case-insensitive prefix of some word of text.
func MatchesWordPrefixes(query, text string) bool {
	folder := cases.Fold()
	return matchAll(foldAll(folder, Words(query)), foldAll(folder, Words(text)))
}

// Words splits s into maximal runs of letters, digits and marks.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
	})
}

func matchAll(queryWords, textWords []string) bool {
	for _, w := range queryWords {
		if !hasWordWithPrefix(textWords, w) {
			return false
		}
	}
	return true
}

func hasWordWithPrefix(textWords []string, prefix string) bool {
	for _, t := range textWords {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

func foldAll(folder cases.Caser, words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = folder.String(w)
	}
	return out
}
