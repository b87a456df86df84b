package tokenizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// nonWordRegex matches sequences of characters that cannot be part of a term.
var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// minTermLength is the shortest run of word characters that counts as a term.
const minTermLength = 2

// Tokenize converts a string into a slice of terms.
// It lowercases the string, splits it by non-word characters and drops
// single-character runs, so "AB-7 | Bolt" yields ["ab", "bolt"].
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)

	split := nonWordRegex.Split(lowerText, -1)

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range split {
		if utf8.RuneCountInString(s) >= minTermLength {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// TermCounts tokenizes text and counts occurrences of each term.
func TermCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range Tokenize(text) {
		counts[token]++
	}
	return counts
}
