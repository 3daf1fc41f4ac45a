package searchlite

import "regexp"

// Source is an immutable trusted-source configuration entry. The crawler
// fetches only URLs accepted by a source and follows only links that stay
// within the registry. Changes require redeploying configuration.
type Source struct {
	Name string `json:"name" yaml:"name"`

	// URLPattern is a regular expression over candidate URLs,
	// conventionally anchored with ^.
	URLPattern string `json:"urlPattern" yaml:"url_pattern"`

	SeedURLs []string `json:"seedUrls" yaml:"seed_urls"`

	// SitemapURL optionally points at a sitemap.xml used to expand the
	// seed set. Discovered URLs are still filtered by the registry.
	SitemapURL string `json:"sitemapUrl,omitempty" yaml:"sitemap_url,omitempty"`
}

// Registry is the allow-list of sources the crawler may fetch from.
type Registry struct {
	sources  []Source
	patterns []*regexp.Regexp
}

// NewRegistry compiles the source patterns into a Registry.
func NewRegistry(sources []Source) (*Registry, error) {
	r := &Registry{sources: sources}
	for _, s := range sources {
		if s.Name == "" {
			return nil, Errorf(EINVALID, "source name required")
		}
		re, err := regexp.Compile(s.URLPattern)
		if err != nil {
			return nil, Errorf(EINVALID, "source %q: invalid URL pattern: %v", s.Name, err)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// Accepts reports whether url matches at least one source's pattern.
func (r *Registry) Accepts(url string) bool {
	for _, re := range r.patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

// Sources returns the configured sources.
func (r *Registry) Sources() []Source {
	return r.sources
}
