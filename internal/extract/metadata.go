// Package extract turns crawled pages into article metadata and discovers
// sub-article links with LLM assistance.
package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

// MetadataExtractor pulls title, publication date, body text and language
// out of a single article page.
type MetadataExtractor struct {
	detector lingua.LanguageDetector
	logger   *slog.Logger
}

// NewMetadataExtractor builds an extractor. The language detector is
// restricted to the languages the summarizer is expected to preserve.
func NewMetadataExtractor(logger *slog.Logger) *MetadataExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.Chinese, lingua.Japanese, lingua.Korean,
			lingua.Spanish, lingua.French, lingua.German, lingua.Portuguese,
			lingua.Russian, lingua.Arabic,
		).
		WithLowAccuracyMode().
		Build()
	return &MetadataExtractor{detector: detector, logger: logger}
}

// Extract runs readability extraction on html. It returns false when the
// page yields no usable title or content; such pages are index or landing
// pages, not articles.
func (m *MetadataExtractor) Extract(html, pageURL string) (models.ArticleMetadata, bool) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		m.logger.Warn("metadata extraction skipped, bad URL", "url", pageURL, "error", err)
		return models.ArticleMetadata{}, false
	}

	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		m.logger.Warn("readability extraction failed", "url", pageURL, "error", err)
		return models.ArticleMetadata{}, false
	}

	title := strings.TrimSpace(article.Title)
	content := strings.TrimSpace(article.TextContent)
	if title == "" || content == "" {
		return models.ArticleMetadata{}, false
	}

	date := ""
	if article.PublishedTime != nil {
		date = article.PublishedTime.Format("2006-01-02")
	} else {
		date = dateFromMeta(html)
	}

	return models.ArticleMetadata{
		URL:      pageURL,
		Title:    title,
		Date:     date,
		Content:  content,
		Language: m.detectLanguage(content),
	}, true
}

func (m *MetadataExtractor) detectLanguage(content string) string {
	sample := content
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	language, ok := m.detector.DetectLanguageOf(sample)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

// dateFromMeta falls back to common metadata markup when readability found
// no publication time.
func dateFromMeta(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	candidates := []string{
		doc.Find(`meta[property="article:published_time"]`).AttrOr("content", ""),
		doc.Find(`meta[name="date"]`).AttrOr("content", ""),
		doc.Find(`meta[name="publish-date"]`).AttrOr("content", ""),
		doc.Find(`time[datetime]`).AttrOr("datetime", ""),
	}
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
