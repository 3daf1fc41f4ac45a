package main

import (
	"context"
	"io"
	"log/slog"

	"searchlite"
	"searchlite/crawl"
	"searchlite/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *searchlite.Config
	DB       *sqlite.DB
	Index    searchlite.IndexService
	Searcher searchlite.Searcher
	Pool     *crawl.Pool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" help:"Configuration file path"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl the configured sources and build the index"`
	Search SearchCmd `cmd:"" help:"Search the index"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Once bool `help:"Stop when the frontier is drained instead of waiting for interrupt"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
}
