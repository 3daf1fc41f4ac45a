package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"searchlite"
	"searchlite/bloom"
)

// Compile-time interface verification.
var _ searchlite.IndexService = (*IndexService)(nil)

// Term filter sizing. False positives only cost one extra query against
// the postings table; false negatives are impossible.
const (
	termFilterExpected = 1 << 20
	termFilterFPRate   = 0.01
)

// IndexService implements searchlite.IndexService using SQLite with layered
// in-memory caches: a bounded document cache, a lazily-populated per-term
// postings cache, and a Bloom filter that short-circuits lookups for terms
// that were never indexed.
//
// A single mutex guards the caches and serializes store access, so each
// logical operation runs as one critical section. The lock is never held
// across a network call.
type IndexService struct {
	db *DB

	mu       sync.Mutex
	docs     map[int64]*searchlite.Document
	docLimit int
	postings map[string]searchlite.Postings
	terms    *bloom.Filter
	warmed   bool
}

// NewIndexService creates an IndexService with a document cache bounded at
// docLimit entries.
func NewIndexService(db *DB, docLimit int) *IndexService {
	return &IndexService{
		db:       db,
		docs:     make(map[int64]*searchlite.Document),
		docLimit: docLimit,
		postings: make(map[string]searchlite.Postings),
		terms:    bloom.NewFilter(termFilterExpected, termFilterFPRate),
	}
}

// hashContent computes the xxHash of content and returns it as a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := []byte{
		byte(h >> 56), byte(h >> 48), byte(h >> 40), byte(h >> 32),
		byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h),
	}
	return hex.EncodeToString(b)
}

// Warm preloads the caches from an existing database: the most recently
// fetched documents up to the cache limit, and the term filter from the
// postings table. Until Warm succeeds the term filter is not consulted,
// since it would not know terms indexed by a previous process.
func (s *IndexService) Warm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, content, content_hash, last_fetched
		FROM documents
		ORDER BY last_fetched DESC
		LIMIT ?
	`, s.docLimit)
	if err != nil {
		return searchlite.Errorf(searchlite.EINTERNAL, "warm document cache: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return err
		}
		s.docs[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return searchlite.Errorf(searchlite.EINTERNAL, "warm document cache: %v", err)
	}

	termRows, err := s.db.QueryContext(ctx, `SELECT DISTINCT term FROM postings`)
	if err != nil {
		return searchlite.Errorf(searchlite.EINTERNAL, "warm term filter: %v", err)
	}
	defer termRows.Close()

	for termRows.Next() {
		var term string
		if err := termRows.Scan(&term); err != nil {
			return searchlite.Errorf(searchlite.EINTERNAL, "warm term filter: %v", err)
		}
		s.terms.Add(term)
	}
	if err := termRows.Err(); err != nil {
		return searchlite.Errorf(searchlite.EINTERNAL, "warm term filter: %v", err)
	}

	s.warmed = true
	return nil
}

// IndexDocument upserts the document for url and rebuilds its postings as
// one atomic unit. If the content hash is unchanged from the stored
// version, only the title and timestamp are refreshed and the postings are
// left in place. Cache updates happen only after the transaction commits,
// so a failed write leaves both the store and the caches untouched.
func (s *IndexService) IndexDocument(ctx context.Context, url, title, content string) (int64, error) {
	doc := &searchlite.Document{
		URL:         url,
		Title:       title,
		Content:     content,
		ContentHash: hashContent(content),
		LastFetched: time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return 0, err
	}

	tokens := searchlite.Tokenize(content)
	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, searchlite.Errorf(searchlite.EINTERNAL, "begin transaction: %v", err)
	}
	defer tx.Rollback()

	var oldHash string
	err = tx.QueryRowContext(ctx, `SELECT id, content_hash FROM documents WHERE url = ?`, url).
		Scan(&doc.ID, &oldHash)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.ExecContext(ctx, `
			INSERT INTO documents (url, title, content, content_hash, last_fetched)
			VALUES (?, ?, ?, ?, ?)
		`, url, title, content, doc.ContentHash, doc.LastFetched.Format(time.RFC3339))
		if err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "insert document: %v", err)
		}
		doc.ID, err = res.LastInsertId()
		if err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "insert document: %v", err)
		}

	case err != nil:
		return 0, searchlite.Errorf(searchlite.EINTERNAL, "lookup document: %v", err)

	case oldHash == doc.ContentHash:
		// Content unchanged: refresh metadata and keep the postings.
		if _, err := tx.ExecContext(ctx, `
			UPDATE documents SET title = ?, last_fetched = ? WHERE id = ?
		`, title, doc.LastFetched.Format(time.RFC3339), doc.ID); err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "update document: %v", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "commit: %v", err)
		}
		s.cacheDocument(doc)
		return doc.ID, nil

	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE documents SET title = ?, content = ?, content_hash = ?, last_fetched = ? WHERE id = ?
		`, title, content, doc.ContentHash, doc.LastFetched.Format(time.RFC3339), doc.ID); err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "update document: %v", err)
		}
		// Stale postings from the previous version must not survive.
		if _, err := tx.ExecContext(ctx, `DELETE FROM postings WHERE doc_id = ?`, doc.ID); err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "delete postings: %v", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO postings (term, doc_id, positions) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, searchlite.Errorf(searchlite.EINTERNAL, "prepare postings insert: %v", err)
	}
	defer stmt.Close()

	for term, pos := range positions {
		encoded, err := json.Marshal(pos)
		if err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "encode positions: %v", err)
		}
		if _, err := stmt.ExecContext(ctx, term, doc.ID, string(encoded)); err != nil {
			return 0, searchlite.Errorf(searchlite.EINTERNAL, "insert posting: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, searchlite.Errorf(searchlite.EINTERNAL, "commit: %v", err)
	}

	s.cacheDocument(doc)

	// Purge stale cached postings for this document across all cached
	// terms, then refresh the cached terms present in the new content.
	// This is an O(cached terms) cleanup.
	for term, cached := range s.postings {
		delete(cached, doc.ID)
		if pos, ok := positions[term]; ok {
			cached[doc.ID] = pos
		}
		if len(cached) == 0 {
			delete(s.postings, term)
		}
	}
	for term := range positions {
		s.terms.Add(term)
	}

	return doc.ID, nil
}

// cacheDocument inserts doc into the bounded document cache. On overflow it
// evicts one arbitrary existing entry; the cache is bounded, not
// recency-optimal. The caller must hold s.mu.
func (s *IndexService) cacheDocument(doc *searchlite.Document) {
	if _, ok := s.docs[doc.ID]; !ok && len(s.docs) >= s.docLimit {
		for id := range s.docs {
			if id != doc.ID {
				delete(s.docs, id)
				break
			}
		}
	}
	s.docs[doc.ID] = doc
}

// Document retrieves a document by ID, from the cache when possible.
func (s *IndexService) Document(ctx context.Context, id int64) (*searchlite.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[id]; ok {
		return doc, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, content, content_hash, last_fetched
		FROM documents
		WHERE id = ?
	`, id)
	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, searchlite.Errorf(searchlite.ENOTFOUND, "document %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	s.cacheDocument(doc)
	return doc, nil
}

// DocumentByURL retrieves a document by URL.
func (s *IndexService) DocumentByURL(ctx context.Context, url string) (*searchlite.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, content, content_hash, last_fetched
		FROM documents
		WHERE url = ?
	`, url)
	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, searchlite.Errorf(searchlite.ENOTFOUND, "document not found for %q", url)
	}
	if err != nil {
		return nil, err
	}

	s.cacheDocument(doc)
	return doc, nil
}

// IndexedURLs returns the URLs of all indexed documents.
func (s *IndexService) IndexedURLs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT url FROM documents`)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINTERNAL, "list indexed URLs: %v", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, searchlite.Errorf(searchlite.EINTERNAL, "list indexed URLs: %v", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// Postings returns the position lists for a term, from the cache when
// possible. The returned map is a snapshot the caller may read without
// holding any lock. Unknown terms yield an empty map, not an error.
func (s *IndexService) Postings(ctx context.Context, term string) (searchlite.Postings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.postings[term]; ok {
		return clonePostings(cached), nil
	}

	// A warmed term filter knows every indexed term, so a miss means the
	// term has no postings at all and the query can be skipped.
	if s.warmed && !s.terms.Test(term) {
		return searchlite.Postings{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, positions FROM postings WHERE term = ?`, term)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINTERNAL, "query postings for %q: %v", term, err)
	}
	defer rows.Close()

	result := searchlite.Postings{}
	for rows.Next() {
		var docID int64
		var encoded string
		if err := rows.Scan(&docID, &encoded); err != nil {
			return nil, searchlite.Errorf(searchlite.EINTERNAL, "scan posting for %q: %v", term, err)
		}
		var positions []int
		if err := json.Unmarshal([]byte(encoded), &positions); err != nil {
			// A malformed row contributes nothing; the rest of the
			// term's postings are still usable.
			continue
		}
		result[docID] = positions
	}
	if err := rows.Err(); err != nil {
		return nil, searchlite.Errorf(searchlite.EINTERNAL, "query postings for %q: %v", term, err)
	}

	s.postings[term] = result
	return clonePostings(result), nil
}

// clonePostings returns a shallow copy of p. Position slices are shared:
// they are replaced wholesale on update, never mutated in place.
func clonePostings(p searchlite.Postings) searchlite.Postings {
	out := make(searchlite.Postings, len(p))
	for id, positions := range p {
		out[id] = positions
	}
	return out
}

// scanDocument scans a document row using the given scan function.
func scanDocument(scan func(...any) error) (*searchlite.Document, error) {
	var doc searchlite.Document
	var lastFetched string
	if err := scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &doc.ContentHash, &lastFetched); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, searchlite.Errorf(searchlite.EINTERNAL, "scan document: %v", err)
	}
	t, err := time.Parse(time.RFC3339, lastFetched)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINTERNAL, "parse last_fetched: %v", err)
	}
	doc.LastFetched = t
	return &doc, nil
}
