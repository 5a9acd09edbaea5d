package pipeline

import (
	"fmt"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

// ErrorKind classifies fatal pipeline outcomes.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindCrawlFailed: the root URL fetch errored or returned no content.
	KindCrawlFailed
	// KindCleaningFailed: HTML to markdown cleaning produced no output.
	KindCleaningFailed
	// KindNoContentFound: no sub-article metadata was collected in any chunk.
	KindNoContentFound
	// KindSummarizationFailed: the LLM produced no parseable summaries.
	KindSummarizationFailed
	// KindInsufficientContent: the summary batch needs more prompt groups
	// than it has articles.
	KindInsufficientContent
)

func (k ErrorKind) String() string {
	switch k {
	case KindCrawlFailed:
		return "crawl_failed"
	case KindCleaningFailed:
		return "cleaning_failed"
	case KindNoContentFound:
		return "no_content_found"
	case KindSummarizationFailed:
		return "summarization_failed"
	case KindInsufficientContent:
		return "insufficient_content_to_chunk"
	default:
		return "unknown"
	}
}

// Error is a tagged fatal pipeline error. Callers branch on Kind instead of
// inspecting exception types.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of one fetch run: either a list of article records
// or a tagged error.
type Result struct {
	Articles []models.ArticleRecord
	Err      *Error
}

// Ok reports whether the run produced records without a fatal error.
func (r Result) Ok() bool { return r.Err == nil }
