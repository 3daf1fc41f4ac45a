package searchlite

import "context"

// LinkPriority determines where a URL is inserted in the frontier.
type LinkPriority int

// Priority classes for frontier insertion. Pagination links jump the queue
// so that listing pages are walked before their articles pile up.
const (
	PriorityArticle LinkPriority = iota
	PriorityPagination
)

// Frontier is the deduplicated queue of URLs pending crawl, with membership
// guards for URLs already queued and already indexed. Implementations must
// be safe for concurrent use by multiple workers.
type Frontier interface {
	// Enqueue adds url to the queue: at the front for PriorityPagination,
	// at the back for PriorityArticle. It is a no-op (returning false) if
	// the URL is already queued or already indexed.
	Enqueue(url string, priority LinkPriority) bool

	// Dequeue pops the next URL front-first.
	// The bool result is false if the frontier is empty.
	Dequeue() (string, bool)

	// MarkIndexed records url as indexed. Idempotent.
	MarkIndexed(url string)

	// Indexed reports whether url has been marked indexed.
	Indexed(url string) bool

	// Len returns the number of queued URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
