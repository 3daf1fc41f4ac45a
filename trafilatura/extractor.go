// Package trafilatura provides an alternative content extractor built on
// go-trafilatura, which tends to handle news sites better than the
// readability heuristic.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"searchlite"
)

// Ensure Extractor implements searchlite.Extractor at compile time.
var _ searchlite.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "trafilatura: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, searchlite.Errorf(searchlite.EINVALID, "no main content extracted")
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = "No Title"
	}

	return &searchlite.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
