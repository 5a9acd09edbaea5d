package models

// ArticleMetadata holds the extracted fields for one crawled sub-article.
// It lives only for the duration of a single fetch run; the caller persists
// the merged ArticleRecord, never this.
type ArticleMetadata struct {
	URL      string
	Title    string
	Date     string // "2006-01-02" or empty when no publication date was found
	Content  string
	Language string // ISO 639-1 code, empty when detection was inconclusive
}

// SummaryRecord is one entry of the JSON array the summarization model
// returns. Entries with an empty URL or summary are rejected at parse time.
type SummaryRecord struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// ArticleRecord is the pipeline's output unit: a SummaryRecord merged with
// the date/content/language of the matching ArticleMetadata.
type ArticleRecord struct {
	Title    string
	URL      string
	Date     string
	Summary  string
	Content  string
	Language string
}

// CrawlResult is the outcome of fetching one URL. Error is the empty string
// on success.
type CrawlResult struct {
	OriginalURL string
	FinalURL    string
	Content     string
	Error       string
}

// Succeeded reports whether the fetch produced usable content.
func (r CrawlResult) Succeeded() bool {
	return r.Error == "" && r.Content != ""
}
