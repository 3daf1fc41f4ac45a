package searchlite

// ExtractResult holds the title and main body text extracted from a page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as clean text. Scripts, styles, navigation
	// and other boilerplate have been removed.
	Text string
}

// Extractor derives a clean title and main-content text from raw HTML.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Unparsable markup or empty extracted text fails with EINVALID;
	// the caller skips indexing but does not crash.
	Extract(rawHTML string) (*ExtractResult, error)
}

// ClassifiedLinks separates a page's in-scope outbound links by crawl role.
// Links outside the trusted-source registry are silently dropped.
type ClassifiedLinks struct {
	Articles   []string
	Pagination []string
}

// PaginationHints configures how pagination links are recognized: by exact
// visible text, by CSS class substring, or by rel attribute.
type PaginationHints struct {
	Text     []string `json:"text" yaml:"text"`
	CSSClass []string `json:"cssClass" yaml:"css_class"`
	Rel      []string `json:"rel" yaml:"rel"`
}

// DefaultPaginationHints returns the built-in pagination hint set.
func DefaultPaginationHints() PaginationHints {
	return PaginationHints{
		Text:     []string{"next", "próxima", "seguinte", "next page", "próxima página", ">", ">>"},
		CSSClass: []string{"next", "next-page", "pagination-next", "proxima", "page-next", "next-posts-link"},
		Rel:      []string{"next"},
	}
}

// LinkClassifier resolves every anchor in a page to an absolute URL and
// classifies it as article or pagination.
type LinkClassifier interface {
	// Classify parses raw HTML, resolves anchors against baseURL, keeps
	// only registry-accepted URLs and splits them by role.
	Classify(rawHTML, baseURL string) (*ClassifiedLinks, error)
}
