package search

import (
	"strings"
	"unicode/utf8"
)

// minTermLength is the shortest question word that earns a term bonus, exclusive.
const minTermLength = 2

// normalizeQuery trims surrounding whitespace and lowercases the query.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// queryTerms splits a normalized query on whitespace and drops words of
// two characters or fewer.
func queryTerms(query string) []string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) > minTermLength {
			terms = append(terms, word)
		}
	}
	return terms
}
