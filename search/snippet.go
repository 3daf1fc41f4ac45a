package search

import (
	"strings"
	"unicode/utf8"
)

// minRelevantLength is the threshold under which a sentence-based snippet
// is considered too thin and replaced by the leading content.
const minRelevantLength = 50

const ellipsis = "..."

// Snippet builds a bounded excerpt of content relevant to the query
// tokens: sentences containing any token are kept and joined; if the
// result is empty or too short, the leading content is used instead. The
// returned snippet never exceeds maxLen bytes.
func Snippet(content string, tokens []string, maxLen int) string {
	content = strings.TrimSpace(content)

	var kept []string
	for _, sentence := range splitSentences(content) {
		lower := strings.ToLower(sentence)
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				kept = append(kept, sentence)
				break
			}
		}
	}
	snippet := strings.Join(kept, " ")

	if len(snippet) < minRelevantLength {
		snippet = content
	}

	if len(snippet) <= maxLen {
		return snippet
	}
	return truncate(snippet, maxLen)
}

// truncate cuts s to at most maxLen bytes, preferring the last
// sentence-ending punctuation that fits, then the last whole word with
// an ellipsis appended.
func truncate(s string, maxLen int) string {
	if maxLen <= len(ellipsis) {
		return strings.TrimSpace(cutAtRune(s, maxLen))
	}

	cut := cutAtRune(s, maxLen)
	if idx := strings.LastIndexAny(cut, ".!?"); idx != -1 {
		return strings.TrimSpace(cut[:idx+1])
	}

	cut = cutAtRune(cut, maxLen-len(ellipsis))
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + ellipsis
}

// cutAtRune cuts s to at most n bytes without splitting a rune.
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// splitSentences splits text after sentence-ending punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if isSpace(text[i+1]) {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
