// Package crawl fetches page content over HTTP. Fetch handles one URL;
// FetchMany fans out over a bounded number of concurrent fetches, which caps
// the pressure one pipeline run can put on a source site.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

// Crawler fetches raw page content. Failures are reported inside the
// CrawlResult, never as Go errors: a bad sub-URL must not abort a batch.
type Crawler struct {
	client       *http.Client
	concurrency  int
	maxBodyBytes int64
	userAgent    string
	logger       *slog.Logger
}

// New builds a crawler from config limits.
func New(cfg models.CrawlerConfig, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 5
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Crawler{
		client:       &http.Client{Timeout: timeout},
		concurrency:  concurrency,
		maxBodyBytes: maxBody,
		userAgent:    cfg.UserAgent,
		logger:       logger,
	}
}

// Fetch retrieves one URL. The returned FinalURL reflects redirects.
func (c *Crawler) Fetch(ctx context.Context, rawURL string) models.CrawlResult {
	result := models.CrawlResult{OriginalURL: rawURL, FinalURL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("invalid request: %v", err)
		return result
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.Request != nil && resp.Request.URL != nil {
		result.FinalURL = resp.Request.URL.String()
	}
	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		result.Error = fmt.Sprintf("failed to read body: %v", err)
		return result
	}

	result.Content = string(body)
	return result
}

// FetchMany fetches urls with bounded concurrency and streams results on the
// returned channel, which closes once every fetch has finished. Cancelling
// ctx stops new fetches; in-flight requests observe the same context.
func (c *Crawler) FetchMany(ctx context.Context, urls []string) <-chan models.CrawlResult {
	results := make(chan models.CrawlResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results <- models.CrawlResult{OriginalURL: u, FinalURL: u, Error: err.Error()}
				return nil
			}
			r := c.Fetch(gctx, u)
			if r.Error != "" {
				c.logger.Warn("sub-URL fetch failed", "url", u, "error", r.Error)
			}
			results <- r
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	return results
}
