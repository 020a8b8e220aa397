// Package main provides the entry point for the mock interview server and terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/mock-interview/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mock_interview",
	Short: "AI mock interview server and terminal client",
	Long:  "Mock Interview generates interview questions from a role, level and resume, " +
		"scores each answer with a Gemini model and produces an end-of-session report.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
}

// loadConfig reads --config, applies environment overrides and validates.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
