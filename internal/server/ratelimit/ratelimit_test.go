package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, _, _ := b.take()
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, remaining, resetTime := b.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(2, 20.0)
	b.take()
	b.take()

	allowed, _, _ := b.take()
	require.False(t, allowed)

	time.Sleep(60 * time.Millisecond)
	allowed, _, _ = b.take()
	assert.True(t, allowed, "a token should refill after 50ms at 20/s")
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	allowed, _ = limiter.Allow("127.0.0.2", "/test", "GET")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:      true,
		DefaultLimit: 1,
		Whitelist:    map[string]bool{"10.0.0.1": true},
		Blacklist:    map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/questions", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("10.0.0.2", "/questions", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/questions", "POST")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate-report", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/generate-report", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/generate-report", "POST")
	assert.False(t, allowed)

	allowed, info := limiter.Allow("127.0.0.1", "/evaluate", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthAndPreflightUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("127.0.0.1", "/questions", "OPTIONS")
		assert.True(t, allowed)
	}
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
		assert.True(t, allowed, "burst request %d", i+1)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/evaluate", "POST"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_Sweep(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	require.Equal(t, 10, limiter.Len())

	limiter.sweep(time.Now().Add(-time.Hour))
	assert.Equal(t, 10, limiter.Len(), "recent buckets survive")

	limiter.sweep(time.Now().Add(time.Second))
	assert.Equal(t, 0, limiter.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestEndpointConfigs(t *testing.T) {
	configs := DefaultEndpointConfigs()

	for _, path := range []string{"/questions", "/question", "/evaluate", "/followups", "/generate-report", "/evaluate-resume", "/upload-resume"} {
		ec := MatchEndpoint(path, "POST", configs)
		require.NotNil(t, ec, path)
		assert.Greater(t, ec.Limit, 0, path)
	}
	assert.Nil(t, MatchEndpoint("/unknown", "POST", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestMatchEndpoint_Prefix(t *testing.T) {
	configs := []EndpointConfig{{Path: "/static/", Method: "GET", Limit: 3}}
	ec := MatchEndpoint("/static/app.js", "GET", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 3, ec.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_LLM_LIMIT", "12")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	ec := MatchEndpoint("/evaluate", "POST", cfg.EndpointConfigs)
	require.NotNil(t, ec)
	assert.Equal(t, 12, ec.Limit)
	assert.Equal(t, 2, ec.Burst)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
