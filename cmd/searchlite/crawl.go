package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// statsInterval is how often the crawl command reports frontier progress.
const statsInterval = 10 * time.Second

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := deps.Pool.Start(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				deps.Logger.Info("crawl progress", "queued", deps.Pool.Frontier.Len())
			}
		}
	})

	g.Go(func() error {
		if c.Once {
			// Drained frontier with workers idle means the crawl is done.
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if deps.Pool.Frontier.Len() == 0 {
						stop()
						return nil
					}
				}
			}
		}
		<-ctx.Done()
		return nil
	})

	_ = g.Wait()

	if err := deps.Pool.Stop(); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "crawl finished")
	return nil
}
