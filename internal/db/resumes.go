package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Resume is the stored resume text for one session.
type Resume struct {
	SessionID string    `json:"session_id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

const resumeSchema = `CREATE TABLE IF NOT EXISTS resumes (
	session_id TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureResumeSchema creates the resumes table if it does not exist.
func (db *DB) EnsureResumeSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, resumeSchema); err != nil {
		return fmt.Errorf("failed to create resumes table: %w", err)
	}
	return nil
}

// SaveResume stores the resume text for a session, replacing any previous upload.
func (db *DB) SaveResume(ctx context.Context, sessionID, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (session_id, text, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (session_id) DO UPDATE SET text = $2, updated_at = NOW()`,
		sessionID, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume returns the resume for a session, or nil if none was uploaded.
func (db *DB) GetResume(ctx context.Context, sessionID string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, text, updated_at FROM resumes WHERE session_id = $1`,
		sessionID,
	).Scan(&r.SessionID, &r.Text, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

