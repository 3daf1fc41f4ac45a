// Package crawl provides the crawl frontier and the worker pool that
// drives content acquisition: workers drain the frontier, run
// fetch/extract/index for each URL, and feed newly discovered links back.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"searchlite"
)

// Compile-time interface verification.
var _ searchlite.Crawler = (*Pool)(nil)

// DefaultPollInterval is how long an idle worker sleeps before re-checking
// the frontier.
const DefaultPollInterval = time.Second

// Pool runs N long-lived workers sharing the frontier and the index store.
// Per-URL failures are logged and isolated: they never remove a worker or
// block the others.
type Pool struct {
	Registry  *searchlite.Registry
	Frontier  searchlite.Frontier
	Fetcher   searchlite.Fetcher
	Extractor searchlite.Extractor
	Links     searchlite.LinkClassifier
	Index     searchlite.IndexService
	Limiter   searchlite.DomainLimiter
	Sitemaps  searchlite.SitemapService // optional seed expansion
	Logger    *slog.Logger

	Workers         int
	RecrawlInterval time.Duration
	JoinTimeout     time.Duration
	PollInterval    time.Duration
	RetryDelays     []time.Duration

	mu      sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
	done    []chan struct{}
}

func (p *Pool) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Pool) pollInterval() time.Duration {
	if p.PollInterval > 0 {
		return p.PollInterval
	}
	return DefaultPollInterval
}

func (p *Pool) retryDelays() []time.Duration {
	if p.RetryDelays != nil {
		return p.RetryDelays
	}
	return DefaultRetryDelays()
}

// Start seeds the frontier from the trusted sources, applying the
// staleness rule, and launches the workers. Idempotent: a no-op if the
// pool is already running.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		p.logger().Info("crawler already running")
		return nil
	}

	session := uuid.New().String()
	logger := p.logger().With("session", session)

	if err := p.seed(ctx, logger); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.running.Store(true)

	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	p.done = make([]chan struct{}, workers)
	for i := 0; i < workers; i++ {
		done := make(chan struct{})
		p.done[i] = done
		go p.worker(runCtx, logger.With("worker", i), done)
	}

	logger.Info("crawler started", "workers", workers, "queued", p.Frontier.Len())
	return nil
}

// seed pre-marks already indexed URLs and enqueues each source's seed URLs.
// A seed is enqueued when it has never been indexed or when its last fetch
// is older than the re-crawl interval; still-fresh seeds are skipped.
func (p *Pool) seed(ctx context.Context, logger *slog.Logger) error {
	// Decide per-seed first so that a stale seed is not blocked by the
	// indexed-set preload below.
	recrawl := make(map[string]bool)
	var seeds []string

	for _, source := range p.Registry.Sources() {
		urls := append([]string(nil), source.SeedURLs...)

		if source.SitemapURL != "" && p.Sitemaps != nil {
			discovered, err := p.Sitemaps.DiscoverURLs(ctx, source.SitemapURL)
			if err != nil {
				logger.Warn("sitemap discovery failed", "source", source.Name, "err", err)
			}
			for _, u := range discovered {
				if p.Registry.Accepts(u) {
					urls = append(urls, u)
				}
			}
		}

		for _, seedURL := range urls {
			doc, err := p.Index.DocumentByURL(ctx, seedURL)
			switch {
			case searchlite.ErrorCode(err) == searchlite.ENOTFOUND:
				seeds = append(seeds, seedURL)
			case err != nil:
				return err
			case time.Since(doc.LastFetched) >= p.RecrawlInterval:
				recrawl[seedURL] = true
				seeds = append(seeds, seedURL)
			default:
				logger.Debug("seed still fresh", "url", seedURL)
			}
		}
	}

	indexed, err := p.Index.IndexedURLs(ctx)
	if err != nil {
		return err
	}
	for _, u := range indexed {
		if !recrawl[u] {
			p.Frontier.MarkIndexed(u)
		}
	}

	for _, u := range seeds {
		p.Frontier.Enqueue(u, searchlite.PriorityArticle)
	}
	return nil
}

// Stop signals the workers to finish, joins each with a bounded timeout
// and reports (non-fatally) any worker that fails to terminate in time.
// Remaining in-flight work is canceled afterwards.
func (p *Pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		return nil
	}
	p.running.Store(false)

	timeout := p.JoinTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	for i, done := range p.done {
		select {
		case <-done:
		case <-time.After(timeout):
			p.logger().Warn("worker did not terminate in time", "worker", i)
		}
	}

	p.cancel()
	p.done = nil
	p.logger().Info("crawler stopped")
	return nil
}

// worker drains the frontier until the pool is inactive and the frontier
// is empty.
func (p *Pool) worker(ctx context.Context, logger *slog.Logger, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		crawlURL, ok := p.Frontier.Dequeue()
		if !ok {
			if !p.running.Load() {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.pollInterval()):
			}
			continue
		}

		p.process(ctx, logger, crawlURL)
	}
}

// process runs fetch, extract and index for one URL and replenishes the
// frontier from its links. Every failure is logged and dropped; nothing
// propagates into the worker loop.
func (p *Pool) process(ctx context.Context, logger *slog.Logger, crawlURL string) {
	if p.Limiter != nil {
		parsed, err := url.Parse(crawlURL)
		if err != nil {
			logger.Warn("invalid URL", "url", crawlURL, "err", err)
			return
		}
		if err := p.Limiter.Wait(ctx, parsed.Host); err != nil {
			return // context canceled
		}
	}

	html, err := FetchWithRetryDelays(ctx, crawlURL, p.Fetcher.Fetch, func(format string, args ...any) {
		logger.Debug("fetch retry", "msg", format, "args", args)
	}, p.retryDelays())
	if err != nil {
		logger.Warn("fetch failed", "url", crawlURL, "err", err)
		return
	}

	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		logger.Warn("extraction failed", "url", crawlURL, "err", err)
		return
	}

	docID, err := p.Index.IndexDocument(ctx, crawlURL, extracted.Title, extracted.Text)
	if err != nil {
		logger.Error("indexing failed", "url", crawlURL, "err", err)
		return
	}
	p.Frontier.MarkIndexed(crawlURL)

	links, err := p.Links.Classify(html, crawlURL)
	if err != nil {
		logger.Warn("link classification failed", "url", crawlURL, "err", err)
	} else {
		for _, u := range links.Pagination {
			if u != crawlURL {
				p.Frontier.Enqueue(u, searchlite.PriorityPagination)
			}
		}
		for _, u := range links.Articles {
			if u != crawlURL {
				p.Frontier.Enqueue(u, searchlite.PriorityArticle)
			}
		}
	}

	logger.Info("indexed", "url", crawlURL, "doc_id", docID, "title", extracted.Title)
}
