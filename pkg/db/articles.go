package db

import (
	"fmt"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

// InsertArticles stores the records of one run. Records whose URL already
// exists are refreshed in place, so re-fetching a source updates summaries
// instead of duplicating rows. Returns the number of rows written.
func (db *DB) InsertArticles(sessionID int64, sourceURL string, records []models.ArticleRecord) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (session_id, source_url, url, title, date, summary, content, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			session_id = excluded.session_id,
			title = excluded.title,
			date = excluded.date,
			summary = excluded.summary,
			content = excluded.content,
			language = excluded.language
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, r := range records {
		if r.URL == "" || r.Title == "" {
			continue
		}
		if _, err := stmt.Exec(sessionID, sourceURL, r.URL, r.Title, r.Date, r.Summary, r.Content, r.Language); err != nil {
			return written, fmt.Errorf("failed to insert article %s: %w", r.URL, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("failed to commit articles: %w", err)
	}
	return written, nil
}

// KnownURLs returns the article URLs already stored for a source. The
// caller passes these to the pipeline as exclude_links.
func (db *DB) KnownURLs(sourceURL string) ([]string, error) {
	rows, err := db.Query(`SELECT url FROM articles WHERE source_url = ? ORDER BY article_id`, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query known URLs: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// ListArticles returns stored articles for a source, newest first.
func (db *DB) ListArticles(sourceURL string, limit int) ([]models.ArticleRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT url, title, COALESCE(date, ''), COALESCE(summary, ''),
		       COALESCE(content, ''), COALESCE(language, '')
		FROM articles
		WHERE source_url = ?
		ORDER BY article_id DESC
		LIMIT ?
	`, sourceURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var records []models.ArticleRecord
	for rows.Next() {
		var r models.ArticleRecord
		if err := rows.Scan(&r.URL, &r.Title, &r.Date, &r.Summary, &r.Content, &r.Language); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
