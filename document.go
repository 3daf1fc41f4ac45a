package searchlite

import (
	"context"
	"time"
)

// Document represents a crawled page persisted in the index. A document is
// created on first successful fetch; a re-fetch overwrites title, content
// and timestamp and rebuilds its postings — it is never partially updated.
type Document struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	LastFetched time.Time `json:"lastFetched"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// Postings maps document IDs to the ordered token positions of a single
// term. A position list always reflects only the current content of its
// document.
type Postings map[int64][]int

// IndexService owns document and posting records and all cache mutation.
// No other component mutates persisted state directly.
type IndexService interface {
	// IndexDocument upserts the document for url, retokenizes content and
	// rebuilds its postings as one atomic unit. Returns the document ID.
	IndexDocument(ctx context.Context, url, title, content string) (int64, error)

	// Document retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	Document(ctx context.Context, id int64) (*Document, error)

	// DocumentByURL retrieves a document by URL.
	// Returns ENOTFOUND if the document does not exist.
	DocumentByURL(ctx context.Context, url string) (*Document, error)

	// Postings returns the position lists for a term. An unknown term
	// yields an empty map, not an error.
	Postings(ctx context.Context, term string) (Postings, error)

	// IndexedURLs returns the URLs of all indexed documents, used to seed
	// crawl deduplication on startup.
	IndexedURLs(ctx context.Context) ([]string, error)
}
