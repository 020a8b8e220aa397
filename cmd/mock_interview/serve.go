package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/mock-interview/internal/config"
	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/llm"
	"github.com/jonathan/mock-interview/internal/prompts"
	"github.com/jonathan/mock-interview/internal/resumes"
	"github.com/jonathan/mock-interview/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview API server",
	Long:  `Start an HTTP server that exposes the interview endpoints and, optionally, a static front-end.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static-dir", "", "Directory of static files served at /")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveStaticDir != "" {
		cfg.StaticDir = serveStaticDir
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewClient(ctx, modelConfig(cfg), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	gateway := llm.NewGateway(client, llm.GatewayOptions{
		Timeout: cfg.LLMTimeout(),
		Retries: uint64(cfg.Retries()),
		Backoff: 500 * time.Millisecond,
	})

	store, err := resumes.New(ctx, resumes.Options{
		Backend:     cfg.ResumeStore,
		RedisURL:    cfg.RedisURL,
		DatabaseURL: cfg.DatabaseURL,
		TTL:         cfg.ResumeTTL(),
	})
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to open resume store: %w", err)
	}
	log.Printf("[resume] using %s resume store", cfg.ResumeStore)

	svc := interview.NewService(gateway, prompts.NewBuilder(cfg.ResumePrefixChars), store)
	srv := server.New(server.Config{
		Port:           cfg.Port,
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, svc)
	srv.OnShutdown(func() {
		if err := store.Close(); err != nil {
			log.Printf("[resume] failed to close store: %v", err)
		}
		if err := client.Close(); err != nil {
			log.Printf("[llm] failed to close client: %v", err)
		}
	})

	return srv.Start()
}

// modelConfig maps the configured model onto the LLM tiers. The default keeps
// the lighter model for follow-ups.
func modelConfig(cfg *config.Config) *llm.Config {
	mc := llm.DefaultConfig()
	if cfg.Model != "" && cfg.Model != config.DefaultModel {
		mc = mc.WithAllModels(cfg.Model)
	}
	return mc
}
