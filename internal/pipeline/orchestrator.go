// Package pipeline sequences one fetch run: crawl the source page, clean it
// to markdown, chunk it against the LLM context window, extract and crawl
// sub-article links per chunk, batch-summarize everything collected, and
// merge summaries back with the crawled metadata. Sub-URL and sub-chunk
// failures are absorbed locally; only whole-run preconditions (empty crawl,
// empty cleaning, zero collected articles) are fatal.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/extract"
	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/summarize"
	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/llmpool"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/markdown"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/textchunk"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/tokens"
)

// LLMPool is the pool capability one fetch run needs. *llmpool.Pool
// implements it; its method set also satisfies the narrower interfaces the
// extraction and summarization stages declare.
type LLMPool interface {
	GetCompletion(ctx context.Context, req llmpool.CompletionRequest) (string, error)
	ContextWindow() int
}

// Fetcher crawls the root source page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) models.CrawlResult
}

// LinkExtractor discovers and crawls sub-article links in one markdown chunk.
type LinkExtractor interface {
	Extract(ctx context.Context, baseURL, chunk string, pool extract.Completer) (map[string]models.ArticleMetadata, error)
}

// BatchSummarizer summarizes the accumulated metadata map.
type BatchSummarizer interface {
	Summarize(ctx context.Context, metadata map[string]models.ArticleMetadata, pool summarize.Completer) ([]models.SummaryRecord, error)
}

// Options are per-run parameters.
type Options struct {
	// ExcludeLinks carries URLs the caller already knows. The extraction
	// stage does not filter on it; it exists so callers can skip
	// re-persisting known articles.
	ExcludeLinks []string
	Progress     ProgressFunc
}

// Orchestrator drives fetch runs. The function fields default to the real
// implementations and exist so failure-path behavior is testable.
type Orchestrator struct {
	// Clean converts crawled HTML to markdown.
	Clean func(html, baseURL string) (string, error)
	// Chunk splits markdown into n pieces. A panic or empty result falls
	// back to a single chunk holding the whole text.
	Chunk func(text string, n int) []string
	// TokenSize approximates token counts; must never fail.
	TokenSize func(text string) int

	crawler    Fetcher
	extractor  LinkExtractor
	summarizer BatchSummarizer
	logger     *slog.Logger
}

// New builds an orchestrator over the given collaborators.
func New(crawler Fetcher, extractor LinkExtractor, summarizer BatchSummarizer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		Clean:      defaultClean,
		Chunk:      textchunk.Chunk,
		TokenSize:  tokens.Estimate,
		crawler:    crawler,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     logger,
	}
}

func defaultClean(html, baseURL string) (string, error) {
	md, err := markdown.CleanAndFormat(html, baseURL, markdown.Options{})
	if err != nil {
		return "", err
	}
	md = markdown.StripImageLinks(md)
	md = markdown.StripJavaScriptLinks(md)
	return md, nil
}

func fail(kind ErrorKind, detail string, err error) Result {
	return Result{Err: &Error{Kind: kind, Detail: detail, Err: err}}
}

// FetchNews runs the whole pipeline for one source URL and returns the
// merged article records as a tagged result.
func (o *Orchestrator) FetchNews(ctx context.Context, sourceURL string, pool LLMPool, opts Options) Result {
	progress := newProgressReporter(opts.Progress, o.logger)
	logger := o.logger.With("source_url", sourceURL)

	progress.report(StepCrawling, 5, "fetching source page", 0)
	crawled := o.crawler.Fetch(ctx, sourceURL)
	if !crawled.Succeeded() {
		return fail(KindCrawlFailed, fmt.Sprintf("fetching %s: %s", sourceURL, crawled.Error), nil)
	}

	progress.report(StepExtracting, 15, "cleaning page content", 0)
	md, err := o.Clean(crawled.Content, crawled.FinalURL)
	if err != nil || strings.TrimSpace(md) == "" {
		return fail(KindCleaningFailed, "cleaning produced no markdown", err)
	}

	progress.report(StepChunking, 25, "sizing content against context window", 0)
	chunks := o.safeChunks(md, pool.ContextWindow())
	logger.Info("content chunked", "chunks", len(chunks), "tokens", o.TokenSize(md))

	// Chunks are processed strictly one after another; only the sub-URL
	// fetches inside a chunk run concurrently. This bounds peak concurrency
	// for the whole run.
	accumulated := make(map[string]models.ArticleMetadata)
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		percent := 30 + float64(40*i)/float64(len(chunks))
		progress.report(StepProcessing, percent,
			fmt.Sprintf("extracting article links, chunk %d/%d", i+1, len(chunks)), len(accumulated))

		found, err := o.extractor.Extract(ctx, sourceURL, chunk, pool)
		if err != nil {
			if ctx.Err() != nil {
				return fail(KindUnknown, "run cancelled", ctx.Err())
			}
			logger.Warn("link extraction failed for chunk", "chunk", i+1, "error", err)
			continue
		}
		// Later chunks overwrite earlier entries on key collision.
		for url, meta := range found {
			accumulated[url] = meta
		}
	}

	if len(accumulated) == 0 {
		return fail(KindNoContentFound, "no sub-article metadata collected", nil)
	}

	progress.report(StepAnalyzing, 75, "summarizing collected articles", len(accumulated))
	summaries, err := o.summarizer.Summarize(ctx, accumulated, pool)
	if err != nil {
		if errors.Is(err, summarize.ErrInsufficientContent) {
			return fail(KindInsufficientContent, "batch too small for required prompt groups", err)
		}
		return fail(KindSummarizationFailed, "summarization failed", err)
	}
	if len(summaries) == 0 {
		return fail(KindSummarizationFailed, "no parseable summaries returned", nil)
	}

	progress.report(StepFormatting, 95, "merging summaries with metadata", len(summaries))
	records := make([]models.ArticleRecord, 0, len(summaries))
	for _, s := range summaries {
		meta, ok := accumulated[s.URL]
		if !ok {
			// The model invented or rewrote a URL; drop the record.
			logger.Debug("dropping summary with unknown URL", "url", s.URL)
			continue
		}
		records = append(records, models.ArticleRecord{
			Title:    meta.Title,
			URL:      s.URL,
			Date:     meta.Date,
			Summary:  s.Summary,
			Content:  meta.Content,
			Language: meta.Language,
		})
	}

	progress.report(StepFormatting, 100, "fetch complete", len(records))
	return Result{Articles: records}
}

// safeChunks sizes the markdown and splits it when it exceeds the window.
// Chunking is best-effort: a panicking or empty split falls back to the
// whole markdown as a single chunk.
func (o *Orchestrator) safeChunks(md string, window int) (chunks []string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("chunking failed, falling back to single chunk", "panic", r)
			chunks = []string{md}
		}
	}()

	tokenCount := o.TokenSize(md)
	if window <= 0 || tokenCount <= window {
		return []string{md}
	}
	// The +1 provides deliberate headroom beyond the integer division.
	chunks = o.Chunk(md, tokenCount/window+1)
	if len(chunks) == 0 {
		chunks = []string{md}
	}
	return chunks
}
