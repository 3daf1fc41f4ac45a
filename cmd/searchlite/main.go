package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"searchlite"
	"searchlite/crawl"
	"searchlite/goquery"
	slhttp "searchlite/http"
	"searchlite/readability"
	"searchlite/rod"
	"searchlite/search"
	slslog "searchlite/slog"
	"searchlite/sqlite"
	"searchlite/trafilatura"
	"searchlite/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file path. Set before calling Run().
	ConfigPath string

	// Loaded configuration.
	Config *searchlite.Config

	// SQLite database backing the index.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Index searchlite.IndexService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("searchlite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'searchlite --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	m.Config, err = loadConfig(m.ConfigPath)
	if err != nil {
		return err
	}
	deps.Config = m.Config

	// The database is the one dependency every command needs; failing to
	// open it is fatal.
	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set db_path in %s to use a different database path\n", m.ConfigPath)
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}
	defer m.Close()

	index := sqlite.NewIndexService(m.DB, m.Config.DocumentCacheLimit)
	if err := index.Warm(ctx); err != nil {
		logger.Warn("cache warm-up failed", "err", err)
	}
	m.Index = index
	deps.DB = m.DB
	deps.Index = index

	deps.Searcher = &search.Engine{
		Index:            index,
		Logger:           logger,
		MaxResults:       m.Config.MaxResults,
		MaxSnippetLength: m.Config.MaxSnippetLength,
	}

	if strings.HasPrefix(kongCtx.Command(), "crawl") {
		registry, err := searchlite.NewRegistry(m.Config.Sources)
		if err != nil {
			return err
		}

		var fetcher searchlite.Fetcher
		if m.Config.BrowserFetch {
			fetcher, err = rod.NewFetcher(
				rod.WithDelay(m.Config.FetchDelay),
				rod.WithRegistry(registry),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		} else {
			opts := []slhttp.Option{
				slhttp.WithTimeout(m.Config.FetchTimeout),
				slhttp.WithDelay(m.Config.FetchDelay),
				slhttp.WithRegistry(registry),
			}
			if m.Config.InsecureTLS {
				opts = append(opts, slhttp.WithInsecureTLS())
			}
			fetcher = slhttp.NewFetcher(opts...)
		}
		fetcher = slslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		var extractor searchlite.Extractor
		switch m.Config.Extractor {
		case "trafilatura":
			extractor = trafilatura.NewExtractor()
		default:
			extractor = readability.NewExtractor()
		}

		deps.Pool = &crawl.Pool{
			Registry:        registry,
			Frontier:        crawl.NewFrontier(),
			Fetcher:         fetcher,
			Extractor:       extractor,
			Links:           goquery.NewLinkClassifier(registry, m.Config.Hints),
			Index:           index,
			Limiter:         crawl.NewDomainLimiter(m.Config.RequestsPerSecond),
			Sitemaps:        slslog.NewLoggingSitemapService(slhttp.NewSitemapService(nil), logger),
			Logger:          logger,
			Workers:         m.Config.Workers,
			RecrawlInterval: m.Config.RecrawlInterval,
			JoinTimeout:     m.Config.JoinTimeout,
		}

		return kongCtx.Run(deps)
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the config file when present and falls back to defaults
// when it is not, so that search works out of the box.
func loadConfig(path string) (*searchlite.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := searchlite.DefaultConfig()
		return &cfg, nil
	}
	return yaml.LoadConfig(path)
}

func defaultConfigPath() string {
	if path := os.Getenv("SEARCHLITE_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "searchlite.yml"
	}
	dir := filepath.Join(home, ".searchlite")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "searchlite.yml")
}
