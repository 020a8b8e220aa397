package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the single storage slot holding the latest session snapshot.
type Store interface {
	// Load returns the stored snapshot, with false when the slot is empty.
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// OpenStore opens the snapshot store for backend at path.
func OpenStore(backend, path string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown session store backend %q", backend)
	}
}

// FileStore keeps the snapshot in one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, true, nil
}

// Save writes through a temporary file so a crash never leaves a torn snapshot.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
