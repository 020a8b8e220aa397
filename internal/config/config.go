// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied by MergeWithDefaults and Default.
const (
	DefaultPort              = 3000
	DefaultModel             = "gemini-2.5-flash"
	DefaultLLMTimeoutSeconds = 60
	DefaultLLMRetries        = 1
	DefaultResumePrefixChars = 4000
	DefaultMaxUploadBytes    = 5 << 20
	DefaultResumeStore       = "memory"
	DefaultResumeTTLMinutes  = 24 * 60
	DefaultServerURL         = "http://localhost:3000"
	DefaultStateBackend      = "file"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, and environment
// variables override file values.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty"`             // HTTP listen port
	StaticDir      string `json:"static_dir,omitempty"`       // Optional directory served at /
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Largest accepted resume upload

	// Model
	APIKey            string `json:"api_key,omitempty"`             // Gemini API key
	Model             string `json:"model,omitempty"`               // Gemini model used for every tier
	LLMTimeoutSeconds int    `json:"llm_timeout_seconds,omitempty"` // Per-attempt model call timeout
	LLMRetries        *int   `json:"llm_retries,omitempty"`         // Retries after a failed call (0 or 1)
	ResumePrefixChars int    `json:"resume_prefix_chars,omitempty"` // Resume characters embedded in prompts

	// Resume storage
	ResumeStore      string `json:"resume_store,omitempty"`       // memory, redis or postgres
	RedisURL         string `json:"redis_url,omitempty"`          // Redis connection URL
	DatabaseURL      string `json:"database_url,omitempty"`       // PostgreSQL connection URL
	ResumeTTLMinutes int    `json:"resume_ttl_minutes,omitempty"` // Redis expiry for uploaded resumes

	// Client
	ServerURL        string `json:"server_url,omitempty"`         // Base URL the CLI client talks to
	StateBackend     string `json:"state_backend,omitempty"`      // file or sqlite
	StatePath        string `json:"state_path,omitempty"`         // Session snapshot location
	TimeLimitSeconds int    `json:"time_limit_seconds,omitempty"` // Interview countdown, 0 disables
}

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	return c.MergeWithDefaults(Config{})
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is not required here; only the server needs it.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.LLMTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'llm_timeout_seconds' must be non-negative")
	}
	if c.LLMRetries != nil && (*c.LLMRetries < 0 || *c.LLMRetries > 1) {
		return fmt.Errorf("config error: 'llm_retries' must be 0 or 1")
	}
	if c.ResumePrefixChars < 0 {
		return fmt.Errorf("config error: 'resume_prefix_chars' must be non-negative")
	}
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("config error: 'time_limit_seconds' must be non-negative")
	}

	switch strings.ToLower(c.ResumeStore) {
	case "", "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required when resume_store is redis")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when resume_store is postgres")
		}
	default:
		return fmt.Errorf("config error: unknown resume_store %q", c.ResumeStore)
	}

	switch strings.ToLower(c.StateBackend) {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("config error: unknown state_backend %q", c.StateBackend)
	}

	if c.StaticDir != "" {
		if info, err := os.Stat(c.StaticDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: static directory not found: %s", c.StaticDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	result.StaticDir = firstString(result.StaticDir, defaults.StaticDir)
	result.APIKey = firstString(result.APIKey, defaults.APIKey)
	result.Model = firstString(result.Model, defaults.Model, DefaultModel)
	result.ResumeStore = firstString(result.ResumeStore, defaults.ResumeStore, DefaultResumeStore)
	result.RedisURL = firstString(result.RedisURL, defaults.RedisURL)
	result.DatabaseURL = firstString(result.DatabaseURL, defaults.DatabaseURL)
	result.ServerURL = firstString(result.ServerURL, defaults.ServerURL, DefaultServerURL)
	result.StateBackend = firstString(result.StateBackend, defaults.StateBackend, DefaultStateBackend)
	result.StatePath = firstString(result.StatePath, defaults.StatePath, defaultStatePath(result.StateBackend))

	// Int fields: use default if zero
	result.Port = firstInt(result.Port, defaults.Port, DefaultPort)
	result.LLMTimeoutSeconds = firstInt(result.LLMTimeoutSeconds, defaults.LLMTimeoutSeconds, DefaultLLMTimeoutSeconds)
	result.ResumePrefixChars = firstInt(result.ResumePrefixChars, defaults.ResumePrefixChars, DefaultResumePrefixChars)
	result.ResumeTTLMinutes = firstInt(result.ResumeTTLMinutes, defaults.ResumeTTLMinutes, DefaultResumeTTLMinutes)
	result.TimeLimitSeconds = firstInt(result.TimeLimitSeconds, defaults.TimeLimitSeconds)
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = DefaultMaxUploadBytes
	}

	// Retries distinguish unset from zero, so only nil is replaced.
	if result.LLMRetries == nil {
		result.LLMRetries = defaults.LLMRetries
	}
	if result.LLMRetries == nil {
		retries := DefaultLLMRetries
		result.LLMRetries = &retries
	}

	return result
}

// LLMTimeout returns the per-attempt model call timeout.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// Retries returns the configured retry count, defaulting to DefaultLLMRetries.
func (c *Config) Retries() int {
	if c.LLMRetries == nil {
		return DefaultLLMRetries
	}
	return *c.LLMRetries
}

// ResumeTTL returns how long uploaded resumes live in Redis.
func (c *Config) ResumeTTL() time.Duration {
	return time.Duration(c.ResumeTTLMinutes) * time.Minute
}

func defaultStatePath(backend string) string {
	name := "session.json"
	if strings.EqualFold(backend, "sqlite") {
		name = "session.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mock_interview", name)
	}
	return filepath.Join(home, ".mock_interview", name)
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
