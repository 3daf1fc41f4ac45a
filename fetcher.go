package searchlite

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to pass anti-bot challenges.
type Fetcher interface {
	// Fetch performs a single GET for url and returns the raw HTML.
	// A malformed URL fails with EINVALID before any network call;
	// network errors, timeouts and non-2xx responses fail with
	// EUNAVAILABLE. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
