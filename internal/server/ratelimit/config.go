package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	llmLimit := getEnvInt("RATE_LIMIT_LLM_LIMIT", 60)
	llmWindow := getEnvDuration("RATE_LIMIT_LLM_WINDOW", time.Minute)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: EndpointConfigs(llmLimit, llmWindow),
	}
}

// DefaultEndpointConfigs returns the endpoint limits used when nothing is configured.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(60, time.Minute)
}

// EndpointConfigs returns the per-endpoint limits. Every route that calls the
// model shares the llm tier; uploads get a tighter fixed limit.
func EndpointConfigs(llmLimit int, llmWindow time.Duration) []EndpointConfig {
	burst := max(llmLimit/6, 1)
	configs := make([]EndpointConfig, 0, 8)
	for _, path := range []string{"/questions", "/question", "/evaluate", "/followups", "/generate-report", "/evaluate-resume"} {
		configs = append(configs, EndpointConfig{Path: path, Method: "POST", Limit: llmLimit, Window: llmWindow, Burst: burst})
	}
	configs = append(configs, EndpointConfig{Path: "/upload-resume", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5})
	return configs
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

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
