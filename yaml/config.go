// Package yaml loads searchlite configuration from YAML files.
package yaml

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"searchlite"
)

// fileConfig mirrors searchlite.Config with YAML-friendly duration fields.
type fileConfig struct {
	DBPath             string                      `yaml:"db_path"`
	Workers            int                         `yaml:"workers"`
	FetchTimeout       string                      `yaml:"fetch_timeout"`
	FetchDelay         string                      `yaml:"fetch_delay"`
	RequestsPerSecond  float64                     `yaml:"requests_per_second"`
	RecrawlInterval    string                      `yaml:"recrawl_interval"`
	JoinTimeout        string                      `yaml:"join_timeout"`
	MaxResults         int                         `yaml:"max_results"`
	MaxSnippetLength   int                         `yaml:"max_snippet_length"`
	DocumentCacheLimit int                         `yaml:"document_cache_limit"`
	Extractor          string                      `yaml:"extractor"`
	BrowserFetch       bool                        `yaml:"browser_fetch"`
	InsecureTLS        bool                        `yaml:"insecure_tls"`
	Hints              *searchlite.PaginationHints `yaml:"pagination_hints"`
	Sources            []searchlite.Source         `yaml:"sources"`
}

// LoadConfig reads a YAML configuration file, applies it on top of the
// defaults and validates the result.
func LoadConfig(path string) (*searchlite.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "read config %q: %v", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data on top of the defaults.
func ParseConfig(data []byte) (*searchlite.Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, searchlite.Errorf(searchlite.EINVALID, "parse config: %v", err)
	}

	cfg := searchlite.DefaultConfig()

	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if fc.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = fc.RequestsPerSecond
	}
	if fc.MaxResults > 0 {
		cfg.MaxResults = fc.MaxResults
	}
	if fc.MaxSnippetLength > 0 {
		cfg.MaxSnippetLength = fc.MaxSnippetLength
	}
	if fc.DocumentCacheLimit > 0 {
		cfg.DocumentCacheLimit = fc.DocumentCacheLimit
	}
	if fc.Extractor != "" {
		cfg.Extractor = fc.Extractor
	}
	cfg.BrowserFetch = fc.BrowserFetch
	cfg.InsecureTLS = fc.InsecureTLS
	if fc.Hints != nil {
		cfg.Hints = *fc.Hints
	}
	cfg.Sources = fc.Sources

	durations := []struct {
		value string
		dst   *time.Duration
	}{
		{fc.FetchTimeout, &cfg.FetchTimeout},
		{fc.FetchDelay, &cfg.FetchDelay},
		{fc.RecrawlInterval, &cfg.RecrawlInterval},
		{fc.JoinTimeout, &cfg.JoinTimeout},
	}
	for _, entry := range durations {
		if entry.value == "" {
			continue
		}
		d, err := time.ParseDuration(entry.value)
		if err != nil {
			return nil, searchlite.Errorf(searchlite.EINVALID, "invalid duration %q: %v", entry.value, err)
		}
		*entry.dst = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
