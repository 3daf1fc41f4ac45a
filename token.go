package searchlite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lowercases text, splits on non-alphanumeric boundaries and drops
// tokens of a single character. Indexing and querying must share this exact
// tokenization so that query terms line up with stored postings.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
