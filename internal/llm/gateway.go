package llm

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string, tier ModelTier) (string, error)
}

// JSONGenerator is implemented by generators that can ask the model for a
// JSON-only response.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
}

// GatewayOptions bounds each generation call.
type GatewayOptions struct {
	// Timeout applies to every attempt separately.
	Timeout time.Duration
	// Retries is the number of extra attempts after the first (0 or 1).
	Retries uint64
	// Backoff is the pause between attempts.
	Backoff time.Duration
}

// DefaultGatewayOptions returns a 60s timeout with a single retry.
func DefaultGatewayOptions() GatewayOptions {
	return GatewayOptions{
		Timeout: 60 * time.Second,
		Retries: 1,
		Backoff: 500 * time.Millisecond,
	}
}

// Gateway sends prompts to the configured Client with a bounded timeout and a
// single retry. All failures surface as *UpstreamError.
type Gateway struct {
	client Client
	opts   GatewayOptions
}

// NewGateway wraps client. Zero-valued options are replaced by defaults and
// retries are capped at one.
func NewGateway(client Client, opts GatewayOptions) *Gateway {
	def := DefaultGatewayOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Backoff <= 0 {
		opts.Backoff = def.Backoff
	}
	if opts.Retries > 1 {
		opts.Retries = 1
	}
	return &Gateway{client: client, opts: opts}
}

// Generate sends one logical request to the model and returns its text.
func (g *Gateway) Generate(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return g.do(ctx, prompt, tier, g.client.GenerateContent)
}

// GenerateJSON is Generate with the model's JSON response mode enabled.
func (g *Gateway) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return g.do(ctx, prompt, tier, g.client.GenerateJSON)
}

type generateFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)

func (g *Gateway) do(ctx context.Context, prompt string, tier ModelTier, call generateFunc) (string, error) {
	var (
		text     string
		attempts int
	)

	backoff := retry.WithMaxRetries(g.opts.Retries, retry.NewConstant(g.opts.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()

		start := time.Now()
		out, err := call(callCtx, prompt, tier)
		if err == nil && strings.TrimSpace(out) == "" {
			err = ErrEmptyResponse
		}
		if err != nil {
			log.Printf("[llm] attempt %d (%s) failed after %v: %v", attempts, g.client.GetModel(tier), time.Since(start), err)
			// The caller gave up; retrying would only fail again.
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}

		text = out
		return nil
	})
	if err != nil {
		msg := "generation failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "generation timed out"
		}
		return "", &UpstreamError{Message: msg, Attempts: attempts, Cause: err}
	}

	return text, nil
}
