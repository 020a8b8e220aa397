// Package resumes stores uploaded resume text keyed by client session.
package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultKey is used for clients that do not send a session identifier.
const DefaultKey = "default"

// Backend names accepted by New.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Store holds the latest resume text per session key. A Put replaces the
// previous text for that key wholesale.
type Store interface {
	Put(ctx context.Context, key, text string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Close() error
}

// Options selects and configures a Store backend.
type Options struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	TTL         time.Duration
}

// KeyOrDefault returns key, or DefaultKey when key is blank.
func KeyOrDefault(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultKey
	}
	return key
}

// New builds the Store named by opts.Backend. An empty backend means memory.
func New(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.TTL)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown resume store backend: %q", opts.Backend)
	}
}
