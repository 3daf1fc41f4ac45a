// Package http provides an HTTP-based implementation of searchlite.Fetcher
// that emulates a standard browser to reduce anti-automation blocking.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"time"

	"searchlite"
)

// Defaults for fetch timing.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultFetchDelay   = 500 * time.Millisecond
)

// browserHeaders imitate a Chrome browser on Windows. Realistic headers
// make the request far less likely to be refused by the source.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9,pt-BR;q=0.8,pt;q=0.7",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"DNT":                       "1",
}

// Ensure Fetcher implements searchlite.Fetcher at compile time.
var _ searchlite.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests with
// browser-like headers, a bounded timeout and a fixed post-request
// politeness delay. It is safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	delay    time.Duration
	registry *searchlite.Registry
	insecure bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDelay sets the fixed post-request politeness delay.
// Defaults to DefaultFetchDelay (500ms) if not specified.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithRegistry restricts the fetcher to URLs accepted by the
// trusted-source registry. Any other URL fails with EINVALID before a
// network call is made.
func WithRegistry(r *searchlite.Registry) Option {
	return func(f *Fetcher) {
		f.registry = r
	}
}

// WithInsecureTLS disables certificate verification to reach sources
// behind broken TLS or bot challenges. It only takes effect together with
// WithRegistry, so the bypass cannot be abused against arbitrary hosts.
func WithInsecureTLS() Option {
	return func(f *Fetcher) {
		f.insecure = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		delay:   DefaultFetchDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.insecure && f.registry != nil {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch performs one GET for the URL and returns the raw HTML, sleeping
// for the politeness delay after the request completes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", searchlite.Errorf(searchlite.EINVALID, "invalid URL %q", rawURL)
	}
	if f.registry != nil && !f.registry.Accepts(rawURL) {
		return "", searchlite.Errorf(searchlite.EINVALID, "URL %q outside trusted sources", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", searchlite.Errorf(searchlite.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "read %s: %v", rawURL, err)
	}

	f.sleep(ctx)
	return string(body), nil
}

// sleep waits for the politeness delay, returning early on cancellation.
func (f *Fetcher) sleep(ctx context.Context) {
	if f.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(f.delay):
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
