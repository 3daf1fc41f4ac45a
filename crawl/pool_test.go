package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchlite"
	"searchlite/crawl"
	"searchlite/mock"
)

// poolFixture wires a Pool over a real frontier and a recording mock index.
type poolFixture struct {
	pool    *crawl.Pool
	index   *mock.IndexService
	mu      sync.Mutex
	indexed []string
}

func newPoolFixture(t *testing.T, pages map[string]string) *poolFixture {
	t.Helper()

	registry, err := searchlite.NewRegistry([]searchlite.Source{
		{Name: "example", URLPattern: `^https://example\.com/`, SeedURLs: []string{"https://example.com/start"}},
	})
	require.NoError(t, err)

	f := &poolFixture{}
	f.index = &mock.IndexService{
		IndexDocumentFn: func(ctx context.Context, url, title, content string) (int64, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.indexed = append(f.indexed, url)
			return int64(len(f.indexed)), nil
		},
		DocumentByURLFn: func(ctx context.Context, url string) (*searchlite.Document, error) {
			return nil, searchlite.Errorf(searchlite.ENOTFOUND, "not found")
		},
		IndexedURLsFn: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	}

	f.pool = &crawl.Pool{
		Registry: registry,
		Frontier: crawl.NewFrontier(),
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				html, ok := pages[url]
				if !ok {
					return "", searchlite.Errorf(searchlite.EUNAVAILABLE, "HTTP 404 for %s", url)
				}
				return html, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(rawHTML string) (*searchlite.ExtractResult, error) {
				return &searchlite.ExtractResult{Title: "t", Text: rawHTML}, nil
			},
		},
		Links: &mock.LinkClassifier{
			ClassifyFn: func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
				return &searchlite.ClassifiedLinks{}, nil
			},
		},
		Index:           f.index,
		Limiter:         &mock.DomainLimiter{},
		Workers:         2,
		RecrawlInterval: time.Hour,
		JoinTimeout:     5 * time.Second,
		PollInterval:    10 * time.Millisecond,
		RetryDelays:     []time.Duration{},
	}
	return f
}

func (f *poolFixture) indexedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.indexed...)
}

// waitFor polls until cond is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPool_StartStop(t *testing.T) {
	t.Parallel()

	t.Run("crawls seed and discovered links", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{
			"https://example.com/start": "start page",
			"https://example.com/a":     "article a",
			"https://example.com/b":     "article b",
		})
		f.pool.Links = &mock.LinkClassifier{
			ClassifyFn: func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
				if baseURL == "https://example.com/start" {
					return &searchlite.ClassifiedLinks{
						Articles: []string{"https://example.com/a", "https://example.com/b"},
					}, nil
				}
				return &searchlite.ClassifiedLinks{}, nil
			},
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) == 3 })
		require.NoError(t, f.pool.Stop())

		assert.ElementsMatch(t, []string{
			"https://example.com/start",
			"https://example.com/a",
			"https://example.com/b",
		}, f.indexedURLs())
	})

	t.Run("pagination links are crawled before queued articles", func(t *testing.T) {
		t.Parallel()

		var order []string
		var mu sync.Mutex
		f := newPoolFixture(t, map[string]string{
			"https://example.com/start": "start",
			"https://example.com/page2": "page two",
			"https://example.com/late":  "late article",
		})
		f.pool.Workers = 1
		f.index.IndexDocumentFn = func(ctx context.Context, url, title, content string) (int64, error) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, url)
			return int64(len(order)), nil
		}
		f.pool.Links = &mock.LinkClassifier{
			ClassifyFn: func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
				if baseURL == "https://example.com/start" {
					return &searchlite.ClassifiedLinks{
						Articles:   []string{"https://example.com/late"},
						Pagination: []string{"https://example.com/page2"},
					}, nil
				}
				return &searchlite.ClassifiedLinks{}, nil
			},
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(order) == 3
		})
		require.NoError(t, f.pool.Stop())

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{
			"https://example.com/start",
			"https://example.com/page2",
			"https://example.com/late",
		}, order)
	})

	t.Run("a failing URL does not stop the crawl", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{
			"https://example.com/start": "start",
			"https://example.com/ok":    "fine",
			// /broken is absent: every fetch of it fails
		})
		f.pool.Links = &mock.LinkClassifier{
			ClassifyFn: func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
				if baseURL == "https://example.com/start" {
					return &searchlite.ClassifiedLinks{
						Articles: []string{"https://example.com/broken", "https://example.com/ok"},
					}, nil
				}
				return &searchlite.ClassifiedLinks{}, nil
			},
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) == 2 })
		require.NoError(t, f.pool.Stop())

		assert.NotContains(t, f.indexedURLs(), "https://example.com/broken")
	})

	t.Run("start is idempotent while running", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{"https://example.com/start": "start"})

		require.NoError(t, f.pool.Start(context.Background()))
		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) >= 1 })
		require.NoError(t, f.pool.Stop())

		assert.Equal(t, []string{"https://example.com/start"}, f.indexedURLs())
	})

	t.Run("stop before start is a no-op", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, nil)
		require.NoError(t, f.pool.Stop())
	})
}

func TestPool_Seeding(t *testing.T) {
	t.Parallel()

	t.Run("fresh seeds are skipped", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{"https://example.com/start": "start"})
		f.index.DocumentByURLFn = func(ctx context.Context, url string) (*searchlite.Document, error) {
			return &searchlite.Document{URL: url, LastFetched: time.Now().Add(-time.Minute)}, nil
		}
		f.index.IndexedURLsFn = func(ctx context.Context) ([]string, error) {
			return []string{"https://example.com/start"}, nil
		}

		require.NoError(t, f.pool.Start(context.Background()))
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, f.pool.Stop())

		assert.Empty(t, f.indexedURLs())
	})

	t.Run("stale seeds are re-crawled", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{"https://example.com/start": "start"})
		f.index.DocumentByURLFn = func(ctx context.Context, url string) (*searchlite.Document, error) {
			return &searchlite.Document{URL: url, LastFetched: time.Now().Add(-2 * time.Hour)}, nil
		}
		f.index.IndexedURLsFn = func(ctx context.Context) ([]string, error) {
			return []string{"https://example.com/start"}, nil
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) == 1 })
		require.NoError(t, f.pool.Stop())
	})

	t.Run("previously indexed URLs are not re-enqueued from links", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{
			"https://example.com/start": "start",
			"https://example.com/old":   "old article",
		})
		f.index.IndexedURLsFn = func(ctx context.Context) ([]string, error) {
			return []string{"https://example.com/old"}, nil
		}
		f.pool.Links = &mock.LinkClassifier{
			ClassifyFn: func(rawHTML, baseURL string) (*searchlite.ClassifiedLinks, error) {
				return &searchlite.ClassifiedLinks{Articles: []string{"https://example.com/old"}}, nil
			},
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) == 1 })
		require.NoError(t, f.pool.Stop())

		assert.Equal(t, []string{"https://example.com/start"}, f.indexedURLs())
	})

	t.Run("sitemap URLs expand the seed set within scope", func(t *testing.T) {
		t.Parallel()

		f := newPoolFixture(t, map[string]string{
			"https://example.com/start":     "start",
			"https://example.com/sitemap-a": "from sitemap",
		})
		registry, err := searchlite.NewRegistry([]searchlite.Source{{
			Name:       "example",
			URLPattern: `^https://example\.com/`,
			SeedURLs:   []string{"https://example.com/start"},
			SitemapURL: "https://example.com/sitemap.xml",
		}})
		require.NoError(t, err)
		f.pool.Registry = registry
		f.pool.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, sitemapURL string) ([]string, error) {
				return []string{
					"https://example.com/sitemap-a",
					"https://other.example.net/outside",
				}, nil
			},
		}

		require.NoError(t, f.pool.Start(context.Background()))
		waitFor(t, func() bool { return len(f.indexedURLs()) == 2 })
		require.NoError(t, f.pool.Stop())

		assert.ElementsMatch(t, []string{
			"https://example.com/start",
			"https://example.com/sitemap-a",
		}, f.indexedURLs())
	})
}
