package searchlite

import "time"

// Config carries the runtime configuration for the crawler and the query
// engine.
type Config struct {
	// DBPath is the SQLite database location. Use ":memory:" for tests.
	DBPath string `yaml:"db_path"`

	// Workers is the number of concurrent crawl workers.
	Workers int `yaml:"workers"`

	// FetchTimeout bounds a single HTTP request.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// FetchDelay is the fixed post-request politeness delay.
	FetchDelay time.Duration `yaml:"fetch_delay"`

	// RequestsPerSecond caps the per-domain request rate.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// RecrawlInterval is the minimum age before a seed URL is re-crawled.
	RecrawlInterval time.Duration `yaml:"recrawl_interval"`

	// JoinTimeout bounds the wait for each worker during shutdown.
	JoinTimeout time.Duration `yaml:"join_timeout"`

	// MaxResults is the number of results returned per query.
	MaxResults int `yaml:"max_results"`

	// MaxSnippetLength bounds the snippet returned with each result.
	MaxSnippetLength int `yaml:"max_snippet_length"`

	// DocumentCacheLimit bounds the in-memory document cache.
	DocumentCacheLimit int `yaml:"document_cache_limit"`

	// Extractor selects the content extractor: "readability" or
	// "trafilatura".
	Extractor string `yaml:"extractor"`

	// BrowserFetch switches to the headless-browser fetcher for sources
	// behind anti-bot challenges.
	BrowserFetch bool `yaml:"browser_fetch"`

	// InsecureTLS disables certificate verification. It applies only to
	// URLs accepted by the trusted-source registry.
	InsecureTLS bool `yaml:"insecure_tls"`

	Hints PaginationHints `yaml:"pagination_hints"`

	Sources []Source `yaml:"sources"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:             "db/search_index.db",
		Workers:            5,
		FetchTimeout:       10 * time.Second,
		FetchDelay:         500 * time.Millisecond,
		RequestsPerSecond:  2,
		RecrawlInterval:    time.Hour,
		JoinTimeout:        30 * time.Second,
		MaxResults:         5,
		MaxSnippetLength:   300,
		DocumentCacheLimit: 10000,
		Extractor:          "readability",
		Hints:              DefaultPaginationHints(),
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return Errorf(EINVALID, "db_path required")
	}
	if c.Workers <= 0 {
		return Errorf(EINVALID, "workers must be positive")
	}
	if c.MaxResults <= 0 {
		return Errorf(EINVALID, "max_results must be positive")
	}
	if c.MaxSnippetLength <= 0 {
		return Errorf(EINVALID, "max_snippet_length must be positive")
	}
	if c.Extractor != "readability" && c.Extractor != "trafilatura" {
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}
