package resumes

import (
	"context"
	"errors"

	"github.com/jonathan/mock-interview/internal/db"
)

// PostgresStore keeps resumes in the resumes table.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore connects to databaseURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres resume store requires a database URL")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureResumeSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return &PostgresStore{db: database}, nil
}

// Put stores text under key.
func (s *PostgresStore) Put(ctx context.Context, key, text string) error {
	return s.db.SaveResume(ctx, KeyOrDefault(key), text)
}

// Get returns the text stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	r, err := s.db.GetResume(ctx, KeyOrDefault(key))
	if err != nil || r == nil {
		return "", false, err
	}
	return r.Text, true, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
