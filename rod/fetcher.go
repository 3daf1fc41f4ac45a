// Package rod provides a browser-based implementation of
// searchlite.Fetcher for sources behind anti-bot challenges that refuse
// plain HTTP clients.
package rod

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"searchlite"
)

// Ensure Fetcher implements searchlite.Fetcher at compile time.
var _ searchlite.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. A real browser passes most bot challenges that block the
// plain HTTP fetcher. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	browser  *rod.Browser
	delay    time.Duration
	registry *searchlite.Registry
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDelay sets the fixed post-request politeness delay.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithRegistry restricts the fetcher to URLs accepted by the
// trusted-source registry.
func WithRegistry(r *searchlite.Registry) Option {
	return func(f *Fetcher) {
		f.registry = r
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f := &Fetcher{browser: browser}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", searchlite.Errorf(searchlite.EINVALID, "invalid URL %q", rawURL)
	}
	if f.registry != nil && !f.registry.Accepts(rawURL) {
		return "", searchlite.Errorf(searchlite.EINVALID, "URL %q outside trusted sources", rawURL)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(rawURL); err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "navigate %s: %v", rawURL, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "load %s: %v", rawURL, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "read %s: %v", rawURL, err)
	}

	if f.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(f.delay):
		}
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
