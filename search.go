package searchlite

import "context"

// SearchResult is one ranked, snippeted hit. The internal score is not part
// of the public shape.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResponse is the shape consumed by the orchestration layer.
// Results is always non-nil; Message describes the outcome.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Message string         `json:"message"`
}

// Messages reported in SearchResponse.Message.
const (
	MessageCompleted = "search completed successfully"
	MessageNoResults = "no results found"
)

// Searcher answers keyword queries from the index. Implementations must be
// safe for concurrent use and may be called while crawling is in flight.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResponse, error)
}

// Crawler drives content acquisition into the index.
type Crawler interface {
	// Start seeds the frontier from the trusted sources, applying the
	// staleness rule, and launches the worker pool. Idempotent: a no-op
	// if the crawler is already running.
	Start(ctx context.Context) error

	// Stop signals the workers to finish and joins each with a bounded
	// timeout. A worker that fails to terminate in time is reported,
	// not fatal.
	Stop() error
}
