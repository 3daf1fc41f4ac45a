package mock

import (
	"searchlite"
)

var _ searchlite.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of searchlite.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string) (*searchlite.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML string) (*searchlite.ExtractResult, error) {
	return e.ExtractFn(rawHTML)
}

var _ searchlite.LinkClassifier = (*LinkClassifier)(nil)

// LinkClassifier is a mock implementation of searchlite.LinkClassifier.
type LinkClassifier struct {
	ClassifyFn func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error)
}

func (c *LinkClassifier) Classify(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
	return c.ClassifyFn(rawHTML, baseURL)
}
