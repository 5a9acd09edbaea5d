package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestMetadataExtractorBasic(t *testing.T) {
	extractor := NewMetadataExtractor(nil)
	html := articleHTML("Senate passes budget")

	meta, ok := extractor.Extract(html, "https://news.example.com/politics/budget-vote")
	if !ok {
		t.Fatalf("extraction rejected a valid article")
	}
	if !strings.Contains(meta.Title, "Senate passes budget") {
		t.Errorf("title = %q", meta.Title)
	}
	if meta.Date != "2026-08-20" {
		t.Errorf("date = %q, want 2026-08-20", meta.Date)
	}
	if meta.Content == "" {
		t.Errorf("content is empty")
	}
	if meta.Language != "en" {
		t.Errorf("language = %q, want en", meta.Language)
	}
}

func TestMetadataExtractorDateFallback(t *testing.T) {
	paragraph := strings.Repeat("Regulators signed off on the merger following months of review. ", 10)
	var body strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&body, "<p>%s</p>", paragraph)
	}
	html := fmt.Sprintf(`<html><head><title>Merger approved</title></head>
		<body><article><h1>Merger approved</h1>
		<time datetime="2026-07-04">July 4</time>%s</article></body></html>`, body.String())

	extractor := NewMetadataExtractor(nil)
	meta, ok := extractor.Extract(html, "https://news.example.com/business/merger")
	if !ok {
		t.Fatalf("extraction rejected a valid article")
	}
	if meta.Date != "2026-07-04" {
		t.Errorf("fallback date = %q, want 2026-07-04", meta.Date)
	}
}

func TestMetadataExtractorRejectsThinPages(t *testing.T) {
	extractor := NewMetadataExtractor(nil)
	if _, ok := extractor.Extract("<html><body><p>nothing here</p></body></html>", "https://news.example.com/x"); ok {
		t.Fatalf("extraction accepted a page with no usable article")
	}
}

func TestMetadataExtractorBadURL(t *testing.T) {
	extractor := NewMetadataExtractor(nil)
	if _, ok := extractor.Extract(articleHTML("t"), "://not-a-url"); ok {
		t.Fatalf("extraction accepted an unparseable URL")
	}
}
