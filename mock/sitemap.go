package mock

import (
	"context"

	"searchlite"
)

var _ searchlite.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of searchlite.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL)
}
