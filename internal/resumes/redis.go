package resumes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "resume:"

// RedisStore keeps resumes in Redis with an optional expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to redisURL and verifies it is reachable.
// A zero ttl stores resumes without expiry.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("redis resume store requires a redis URL")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.Printf("[resume] redis store connected to %s (ttl %s)", opts.Addr, ttl)
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// Put stores text under key, refreshing its expiry.
func (s *RedisStore) Put(ctx context.Context, key, text string) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+KeyOrDefault(key), text, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store resume: %w", err)
	}
	return nil
}

// Get returns the text stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := s.rdb.Get(ctx, redisKeyPrefix+KeyOrDefault(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load resume: %w", err)
	}
	return text, true, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
