// Package summarize batches collected article metadata into LLM prompts and
// parses the returned summaries. Prompts that would overflow the backend's
// context window are split into contiguous key-order groups and issued
// sequentially.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/llmpool"
	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/tokens"
)

// ErrInsufficientContent reports that the batch must be split into more
// groups than it has articles. Degenerate one-article groups could still
// overflow the window, so the batch fails instead.
var ErrInsufficientContent = errors.New("summarize: fewer articles than required prompt groups")

// Completer is the LLM capability the summarizer needs.
type Completer interface {
	GetCompletion(ctx context.Context, req llmpool.CompletionRequest) (string, error)
	ContextWindow() int
}

const summarySystemPrompt = `You are a news editor. You receive a series of <Article> blocks, each containing the title, URL, date and content of one article.

Return a JSON array of objects, one per real article, each with exactly two fields: "url" and "summary". Summarize each article in 150-200 words, writing the summary in the article's own language. Skip blocks that are not actual news articles. Output only the JSON array, nothing else.`

// Summarizer produces SummaryRecords for a metadata map.
type Summarizer struct {
	// TokenSize approximates prompt token counts. Overridable for tests;
	// defaults to tokens.Estimate.
	TokenSize func(string) int
	logger    *slog.Logger
}

// New builds a summarizer.
func New(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{TokenSize: tokens.Estimate, logger: logger}
}

// Summarize issues one LLM call for the whole batch when it fits the context
// window, or one call per contiguous key-order group otherwise. Groups whose
// response fails to parse contribute nothing; other groups' results are
// still returned.
func (s *Summarizer) Summarize(ctx context.Context, metadata map[string]models.ArticleMetadata, pool Completer) ([]models.SummaryRecord, error) {
	if len(metadata) == 0 {
		return nil, nil
	}

	// Map iteration order is random; sorted keys keep grouping reproducible.
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prompt := buildPrompt(keys, metadata)
	window := pool.ContextWindow()
	promptTokens := s.TokenSize(prompt)

	if window <= 0 || promptTokens <= window {
		return s.summarizeGroup(ctx, pool, prompt, len(keys))
	}

	groups := promptTokens/window + 1
	if len(keys) < groups {
		return nil, fmt.Errorf("%w: %d articles for %d groups", ErrInsufficientContent, len(keys), groups)
	}
	s.logger.Info("summarization prompt exceeds context window, splitting",
		"tokens", promptTokens, "window", window, "groups", groups)

	groupSize := (len(keys) + groups - 1) / groups
	var records []models.SummaryRecord
	for start := 0; start < len(keys); start += groupSize {
		end := start + groupSize
		if end > len(keys) {
			end = len(keys)
		}
		groupKeys := keys[start:end]
		got, err := s.summarizeGroup(ctx, pool, buildPrompt(groupKeys, metadata), len(groupKeys))
		if err != nil {
			return nil, err
		}
		records = append(records, got...)
	}
	return records, nil
}

func (s *Summarizer) summarizeGroup(ctx context.Context, pool Completer, prompt string, articleCount int) ([]models.SummaryRecord, error) {
	response, err := pool.GetCompletion(ctx, llmpool.CompletionRequest{
		System:      summarySystemPrompt,
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("summarization request failed: %w", err)
	}

	records, err := ParseSummaries(response)
	if err != nil {
		s.logger.Warn("discarding unparseable summary response", "articles", articleCount, "error", err)
		return nil, nil
	}
	return records, nil
}

// buildPrompt serializes the selected entries into <Article> blocks.
func buildPrompt(keys []string, metadata map[string]models.ArticleMetadata) string {
	var b strings.Builder
	for _, key := range keys {
		m := metadata[key]
		b.WriteString("<Article>\n")
		fmt.Fprintf(&b, "Title: %s\n", m.Title)
		fmt.Fprintf(&b, "URL: %s\n", key)
		fmt.Fprintf(&b, "Date: %s\n", m.Date)
		if m.Language != "" {
			fmt.Fprintf(&b, "Language: %s\n", m.Language)
		}
		fmt.Fprintf(&b, "Content: %s\n", m.Content)
		b.WriteString("</Article>\n\n")
	}
	return b.String()
}

// ParseSummaries extracts the JSON array from an LLM response and validates
// each entry. Entries missing a url or summary are dropped here, at the
// boundary, so nothing downstream sees malformed records.
func ParseSummaries(response string) ([]models.SummaryRecord, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var raw []models.SummaryRecord
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("malformed summary JSON: %w", err)
	}

	records := make([]models.SummaryRecord, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Summary) == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
