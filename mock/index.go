package mock

import (
	"context"

	"searchlite"
)

var _ searchlite.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of searchlite.IndexService.
type IndexService struct {
	IndexDocumentFn func(ctx context.Context, url, title, content string) (int64, error)
	DocumentFn      func(ctx context.Context, id int64) (*searchlite.Document, error)
	DocumentByURLFn func(ctx context.Context, url string) (*searchlite.Document, error)
	PostingsFn      func(ctx context.Context, term string) (searchlite.Postings, error)
	IndexedURLsFn   func(ctx context.Context) ([]string, error)
}

func (s *IndexService) IndexDocument(ctx context.Context, url, title, content string) (int64, error) {
	return s.IndexDocumentFn(ctx, url, title, content)
}

func (s *IndexService) Document(ctx context.Context, id int64) (*searchlite.Document, error) {
	return s.DocumentFn(ctx, id)
}

func (s *IndexService) DocumentByURL(ctx context.Context, url string) (*searchlite.Document, error) {
	return s.DocumentByURLFn(ctx, url)
}

func (s *IndexService) Postings(ctx context.Context, term string) (searchlite.Postings, error) {
	return s.PostingsFn(ctx, term)
}

func (s *IndexService) IndexedURLs(ctx context.Context) ([]string, error) {
	if s.IndexedURLsFn == nil {
		return nil, nil
	}
	return s.IndexedURLsFn(ctx)
}
