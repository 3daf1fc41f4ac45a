package searchlite

import "context"

// SitemapService discovers page URLs from a sitemap. Used to expand a
// source's seed set; discovered URLs are still filtered by the Registry.
type SitemapService interface {
	// DiscoverURLs fetches and parses the sitemap at sitemapURL,
	// following one level of sitemap-index indirection.
	DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error)
}
