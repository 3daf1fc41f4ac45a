// Package search provides the query engine: it tokenizes queries, scores
// and ranks documents via the index store, and produces titled, snippeted
// results.
package search

import (
	"context"
	"log/slog"
	"sort"

	"searchlite"
)

// Defaults mirroring the crawler configuration.
const (
	DefaultMaxResults       = 5
	DefaultMaxSnippetLength = 300
)

// Compile-time interface verification.
var _ searchlite.Searcher = (*Engine)(nil)

// Engine answers keyword queries using pure term-frequency scoring: a
// document's score is the sum, over all matched query tokens, of that
// token's position-list length. No IDF weighting, no phrase matching.
// Safe for concurrent use; may run while crawling is in flight.
type Engine struct {
	Index  searchlite.IndexService
	Logger *slog.Logger

	MaxResults       int
	MaxSnippetLength int
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *Engine) maxResults() int {
	if e.MaxResults > 0 {
		return e.MaxResults
	}
	return DefaultMaxResults
}

func (e *Engine) maxSnippetLength() int {
	if e.MaxSnippetLength > 0 {
		return e.MaxSnippetLength
	}
	return DefaultMaxSnippetLength
}

// Search runs a query against the index and returns ranked, snippeted
// results. A query that tokenizes to nothing yields an empty result set
// and the no-results message, not an error. Per-term lookup failures are
// logged and skipped so a partial index problem never reaches the caller.
func (e *Engine) Search(ctx context.Context, query string) (*searchlite.SearchResponse, error) {
	resp := &searchlite.SearchResponse{
		Query:   query,
		Results: []searchlite.SearchResult{},
		Message: searchlite.MessageNoResults,
	}

	tokens := searchlite.Tokenize(query)
	if len(tokens) == 0 {
		return resp, nil
	}

	scores := make(map[int64]int)
	for _, token := range tokens {
		postings, err := e.Index.Postings(ctx, token)
		if err != nil {
			e.logger().Warn("postings lookup failed", "term", token, "err", err)
			continue
		}
		for docID, positions := range postings {
			scores[docID] += len(positions)
		}
	}

	type scoredDoc struct {
		id    int64
		score int
	}
	ranked := make([]scoredDoc, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, scoredDoc{id: id, score: score})
	}
	// Equal scores fall back to ascending document ID so that result
	// order is reproducible rather than map-iteration dependent.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	for _, r := range ranked {
		if len(resp.Results) >= e.maxResults() {
			break
		}
		doc, err := e.Index.Document(ctx, r.id)
		if err != nil {
			e.logger().Warn("document lookup failed", "doc_id", r.id, "err", err)
			continue
		}
		resp.Results = append(resp.Results, searchlite.SearchResult{
			Title:   doc.Title,
			URL:     doc.URL,
			Snippet: Snippet(doc.Content, tokens, e.maxSnippetLength()),
		})
	}

	if len(resp.Results) > 0 {
		resp.Message = searchlite.MessageCompleted
	}
	return resp, nil
}
