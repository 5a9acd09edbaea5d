package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/llmpool"
)

// Fetcher is the crawling capability the extractor needs: a bounded
// concurrent fetch over a set of URLs.
type Fetcher interface {
	FetchMany(ctx context.Context, urls []string) <-chan models.CrawlResult
}

// Completer issues one LLM chat completion.
type Completer interface {
	GetCompletion(ctx context.Context, req llmpool.CompletionRequest) (string, error)
}

const linkSystemPrompt = `You are a news page analyst. You are given the markdown of a news index page and its base URL. List the URLs of the individual article pages it links to.

Rules:
- Output one absolute URL per line and nothing else.
- If no qualifying article links exist, output exactly: no
- Exclude navigation, advertising, category, tag and author profile links.
- Prefer URLs whose path has at least two segments.`

// LinkExtractor asks the LLM which links on an index page point at
// individual articles, crawls those links and collects their metadata.
type LinkExtractor struct {
	crawler Fetcher
	meta    *MetadataExtractor
	logger  *slog.Logger
}

// NewLinkExtractor builds a link extractor over the given crawler and
// metadata extractor.
func NewLinkExtractor(crawler Fetcher, meta *MetadataExtractor, logger *slog.Logger) *LinkExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkExtractor{crawler: crawler, meta: meta, logger: logger}
}

// Extract prompts the LLM with one markdown chunk, resolves the returned
// candidate links and crawls them. Per-URL failures are logged and dropped;
// the returned map holds only sub-articles with usable title and content.
// An empty map is a normal outcome, not an error.
func (e *LinkExtractor) Extract(ctx context.Context, baseURL, chunk string, pool Completer) (map[string]models.ArticleMetadata, error) {
	prompt := fmt.Sprintf("Base URL: %s\n\nPage content:\n%s", baseURL, chunk)
	response, err := pool.GetCompletion(ctx, llmpool.CompletionRequest{
		System:      linkSystemPrompt,
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("link extraction request failed: %w", err)
	}

	links := ResolveLinks(baseURL, response)
	collected := make(map[string]models.ArticleMetadata, len(links))
	if len(links) == 0 {
		return collected, nil
	}
	e.logger.Info("candidate article links identified", "base_url", baseURL, "count", len(links))

	for result := range e.crawler.FetchMany(ctx, links) {
		if !result.Succeeded() {
			continue
		}
		metadata, ok := e.meta.Extract(result.Content, result.OriginalURL)
		if !ok {
			e.logger.Debug("sub-URL yielded no article metadata", "url", result.OriginalURL)
			continue
		}
		collected[result.OriginalURL] = metadata
	}
	return collected, nil
}

// ResolveLinks normalizes a raw LLM link response into a deduplicated list
// of absolute URLs. An empty response or the literal sentinel "no" means no
// candidates.
func ResolveLinks(baseURL, response string) []string {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" || strings.EqualFold(trimmed, "no") {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]struct{})
	var links []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == baseURL {
			continue
		}
		ref, err := url.Parse(line)
		if err != nil {
			continue
		}
		resolved := ref
		if base != nil {
			resolved = base.ResolveReference(ref)
		}
		if resolved.Scheme == "" || resolved.Host == "" {
			continue
		}
		absolute := resolved.String()
		if absolute == baseURL {
			continue
		}
		if _, dup := seen[absolute]; dup {
			continue
		}
		seen[absolute] = struct{}{}
		links = append(links, absolute)
	}
	return links
}
