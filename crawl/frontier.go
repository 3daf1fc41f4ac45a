package crawl

import (
	"strings"
	"sync"

	"searchlite"
)

// Compile-time interface verification.
var _ searchlite.Frontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier: a priority-aware deque with exact
// membership sets for URLs currently queued and URLs already indexed.
// A single mutex keeps the queue and both sets consistent under concurrent
// workers. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	queue   []string
	queued  map[string]struct{}
	indexed map[string]struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued:  make(map[string]struct{}),
		indexed: make(map[string]struct{}),
	}
}

// stripFragment removes the URL fragment. URLs differing only by fragment
// are the same page and must deduplicate together.
func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// Enqueue adds a URL to the frontier: pagination links go to the front,
// article links to the back. It is a no-op if the URL is already queued or
// already indexed, and returns whether the URL was accepted.
func (f *Frontier) Enqueue(url string, priority searchlite.LinkPriority) bool {
	url = stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.queued[url]; ok {
		return false
	}
	if _, ok := f.indexed[url]; ok {
		return false
	}

	if priority == searchlite.PriorityPagination {
		f.queue = append([]string{url}, f.queue...)
	} else {
		f.queue = append(f.queue, url)
	}
	f.queued[url] = struct{}{}
	return true
}

// Dequeue pops the next URL front-first and removes it from the queued set.
// The bool result is false if the frontier is empty.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// MarkIndexed records a URL as indexed. Idempotent.
func (f *Frontier) MarkIndexed(url string) {
	url = stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[url] = struct{}{}
}

// Indexed reports whether a URL has been marked indexed.
func (f *Frontier) Indexed(url string) bool {
	url = stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.indexed[url]
	return ok
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
