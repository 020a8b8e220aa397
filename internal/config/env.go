package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides fields with values from environment variables.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv() {
	c.APIKey = getEnvString("GEMINI_API_KEY", c.APIKey)
	c.Model = getEnvString("GEMINI_MODEL", c.Model)
	c.Port = getEnvInt("PORT", c.Port)
	c.StaticDir = getEnvString("STATIC_DIR", c.StaticDir)
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))
	c.LLMTimeoutSeconds = getEnvInt("LLM_TIMEOUT_SECONDS", c.LLMTimeoutSeconds)
	c.ResumePrefixChars = getEnvInt("RESUME_PREFIX_CHARS", c.ResumePrefixChars)
	c.ResumeStore = getEnvString("RESUME_STORE", c.ResumeStore)
	c.RedisURL = getEnvString("REDIS_URL", c.RedisURL)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.ResumeTTLMinutes = getEnvInt("RESUME_TTL_MINUTES", c.ResumeTTLMinutes)
	c.ServerURL = getEnvString("SERVER_URL", c.ServerURL)
	c.StateBackend = getEnvString("STATE_BACKEND", c.StateBackend)
	c.StatePath = getEnvString("STATE_PATH", c.StatePath)
	c.TimeLimitSeconds = getEnvInt("TIME_LIMIT_SECONDS", c.TimeLimitSeconds)

	if value := os.Getenv("LLM_RETRIES"); value != "" {
		if retries, err := strconv.Atoi(value); err == nil {
			c.LLMRetries = &retries
		}
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Load reads the optional config file, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Config{})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
