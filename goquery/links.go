// Package goquery provides link extraction and classification using CSS
// selectors over parsed HTML.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"searchlite"
)

// Compile-time interface verification.
var _ searchlite.LinkClassifier = (*LinkClassifier)(nil)

// LinkClassifier resolves every anchor in a page to an absolute URL, keeps
// only URLs accepted by the trusted-source registry and classifies each as
// pagination or article. A link is pagination when its visible text, CSS
// class or rel attribute matches the configured hint set.
type LinkClassifier struct {
	registry *searchlite.Registry
	hints    searchlite.PaginationHints
}

// NewLinkClassifier creates a LinkClassifier scoped to the registry.
func NewLinkClassifier(registry *searchlite.Registry, hints searchlite.PaginationHints) *LinkClassifier {
	return &LinkClassifier{registry: registry, hints: hints}
}

// Classify parses raw HTML and returns the in-scope links split by role.
// Out-of-scope links are silently dropped. Links are deduplicated by
// resolved URL; the first classification wins.
func (c *LinkClassifier) Classify(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	links := &searchlite.ClassifiedLinks{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !c.registry.Accepts(resolved) {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		if c.isPagination(sel) {
			links.Pagination = append(links.Pagination, resolved)
		} else {
			links.Articles = append(links.Articles, resolved)
		}
	})

	return links, nil
}

// isPagination applies the hint set to one anchor.
func (c *LinkClassifier) isPagination(sel *goquery.Selection) bool {
	text := strings.ToLower(strings.TrimSpace(sel.Text()))
	for _, hint := range c.hints.Text {
		if text == strings.ToLower(hint) {
			return true
		}
	}

	if class, ok := sel.Attr("class"); ok {
		class = strings.ToLower(class)
		for _, hint := range c.hints.CSSClass {
			if strings.Contains(class, strings.ToLower(hint)) {
				return true
			}
		}
	}

	if rel, ok := sel.Attr("rel"); ok {
		rel = strings.ToLower(rel)
		for _, hint := range c.hints.Rel {
			if strings.Contains(rel, strings.ToLower(hint)) {
				return true
			}
		}
	}

	return false
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
