package db

import (
	"database/sql"
	"fmt"
)

// Session is one recorded fetch run. Timestamps are kept as the TEXT values
// SQLite stores for CURRENT_TIMESTAMP.
type Session struct {
	ID           int64
	SourceName   string
	SourceURL    string
	Status       string
	Error        string
	ArticleCount int
	StartedAt    string
	FinishedAt   string
}

// CreateSession records the start of a fetch run and returns its ID.
func (db *DB) CreateSession(sourceName, sourceURL string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO sessions (source_name, source_url, status)
		VALUES (?, ?, 'running')
	`, sourceName, sourceURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session ID: %w", err)
	}
	return id, nil
}

// FinishSession marks a run completed or failed.
func (db *DB) FinishSession(sessionID int64, status, errMsg string, articleCount int) error {
	_, err := db.Exec(`
		UPDATE sessions
		SET status = ?, error = ?, article_count = ?, finished_at = CURRENT_TIMESTAMP
		WHERE session_id = ?
	`, status, errMsg, articleCount, sessionID)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	return nil
}

// GetSession returns one session by ID.
func (db *DB) GetSession(sessionID int64) (Session, error) {
	var s Session
	var finished sql.NullString
	err := db.QueryRow(`
		SELECT session_id, source_name, source_url, status,
		       COALESCE(error, ''), article_count, started_at, finished_at
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&s.ID, &s.SourceName, &s.SourceURL, &s.Status,
		&s.Error, &s.ArticleCount, &s.StartedAt, &finished)
	if err != nil {
		return Session{}, fmt.Errorf("failed to get session %d: %w", sessionID, err)
	}
	s.FinishedAt = finished.String
	return s, nil
}

// ListSessions returns the most recent runs, newest first.
func (db *DB) ListSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT session_id, source_name, source_url, status,
		       COALESCE(error, ''), article_count, started_at, finished_at
		FROM sessions
		ORDER BY session_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var finished sql.NullString
		if err := rows.Scan(&s.ID, &s.SourceName, &s.SourceURL, &s.Status,
			&s.Error, &s.ArticleCount, &s.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.FinishedAt = finished.String
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
