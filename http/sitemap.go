package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"

	"searchlite"
)

// Ensure SitemapService implements searchlite.SitemapService at compile time.
var _ searchlite.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from sitemap.xml files.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs fetches and parses the sitemap at sitemapURL. A
// <sitemapindex> is followed one level deep; a <urlset> yields its <loc>
// entries directly.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.processSitemap(ctx, sitemapURL, map[string]bool{})
}

// processSitemap fetches and parses one sitemap, handling both urlset and
// sitemapindex roots.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "invalid sitemap URL %q: %v", sitemapURL, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EUNAVAILABLE, "fetch sitemap %s: %v", sitemapURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, searchlite.Errorf(searchlite.EUNAVAILABLE, "HTTP %d for sitemap %s", resp.StatusCode, sitemapURL)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, child := range root.SelectElements("sitemap") {
			loc := child.SelectElement("loc")
			if loc == nil {
				continue
			}
			childURL := strings.TrimSpace(loc.Text())
			if childURL == "" {
				continue
			}
			urls, err := s.processSitemap(ctx, childURL, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, child := range root.SelectElements("url") {
		loc := child.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
