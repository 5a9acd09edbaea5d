// Package app wires the CLI commands to the pipeline, the LLM pool and the
// article store.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/common"
	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/crawl"
	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/extract"
	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/pipeline"
	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/summarize"
	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/db"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/llmpool"
)

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	} else if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(c *cli.Context) (*models.Config, error) {
	return models.LoadConfig(c.String("config"))
}

// resolveSource turns --source/--url flags into a name and URL pair.
func resolveSource(c *cli.Context, config *models.Config) (name, url string, err error) {
	switch {
	case c.IsSet("source") && c.IsSet("url"):
		return "", "", fmt.Errorf("use either --source or --url, not both")
	case c.IsSet("source"):
		s, ok := config.SourceByName(c.String("source"))
		if !ok {
			return "", "", fmt.Errorf("unknown source %q", c.String("source"))
		}
		return s.Name, s.URL, nil
	case c.IsSet("url"):
		cleaned, err := common.ValidateSourceURL(c.String("url"))
		if err != nil {
			return "", "", err
		}
		return "ad-hoc", cleaned, nil
	default:
		return "", "", fmt.Errorf("either --source or --url is required")
	}
}

// FetchAction runs the full pipeline for one source and persists the result.
func FetchAction(c *cli.Context) error {
	logger := newLogger(c)

	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	sourceName, sourceURL, err := resolveSource(c, config)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	database, err := db.Open(config.Database)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: failed to open database: %v", err), 2)
	}
	defer database.Close()

	pool := llmpool.New(config.LLM, logger)
	defer pool.Close()

	crawler := crawl.New(config.Crawler, logger)
	extractor := extract.NewLinkExtractor(crawler, extract.NewMetadataExtractor(logger), logger)
	orchestrator := pipeline.New(crawler, extractor, summarize.New(logger), logger)

	excludeLinks, err := database.KnownURLs(sourceURL)
	if err != nil {
		logger.Warn("failed to load known URLs", "error", err)
	}

	sessionID, err := database.CreateSession(sourceName, sourceURL)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: failed to record session: %v", err), 2)
	}

	progress := func(step string, percent float64, message string, items int) {
		fmt.Fprintf(os.Stderr, "[%3.0f%%] %-11s %s", percent, step, message)
		if items > 0 {
			fmt.Fprintf(os.Stderr, " (%d articles)", items)
		}
		fmt.Fprintln(os.Stderr)
	}

	result := orchestrator.FetchNews(c.Context, sourceURL, pool, pipeline.Options{
		ExcludeLinks: excludeLinks,
		Progress:     progress,
	})
	if !result.Ok() {
		if err := database.FinishSession(sessionID, "failed", result.Err.Error(), 0); err != nil {
			logger.Warn("failed to record session failure", "error", err)
		}
		fmt.Fprintf(os.Stderr, "[100%%] failed      %s\n", result.Err.Detail)
		return cli.Exit(fmt.Sprintf("Error: %v", result.Err), 1)
	}

	written, err := database.InsertArticles(sessionID, sourceURL, result.Articles)
	if err != nil {
		logger.Error("failed to store articles", "error", err)
	}
	if err := database.FinishSession(sessionID, "completed", "", written); err != nil {
		logger.Warn("failed to record session completion", "error", err)
	}

	fmt.Printf("Fetched %d articles from %s (session %d)\n", len(result.Articles), sourceURL, sessionID)
	for _, a := range result.Articles {
		date := a.Date
		if date == "" {
			date = "----------"
		}
		fmt.Printf("  %s  %s\n      %s\n", date, a.Title, a.URL)
	}
	return nil
}
