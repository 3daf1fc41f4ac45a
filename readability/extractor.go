// Package readability extracts the main article content from HTML pages,
// suppressing navigation and boilerplate.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	"searchlite"
)

// Ensure Extractor implements searchlite.Extractor at compile time.
var _ searchlite.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the title and main body text
// from HTML. When the readability heuristic finds nothing, it falls back to
// the full page text with scripts and styles stripped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title and main content text.
func (e *Extractor) Extract(rawHTML string) (*searchlite.ExtractResult, error) {
	if rawHTML == "" {
		return nil, searchlite.Errorf(searchlite.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "readability: %v", err)
	}

	title := strings.TrimSpace(article.Title)
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		text = pageText(rawHTML)
	}
	if text == "" {
		return nil, searchlite.Errorf(searchlite.EINVALID, "no main content extracted")
	}

	if title == "" {
		title = "No Title"
	}

	return &searchlite.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
