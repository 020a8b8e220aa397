package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns the queued responses in order and counts calls.
type scriptedClient struct {
	responses []string
	errs      []error
	delay     time.Duration
	calls     atomic.Int32
	jsonCalls atomic.Int32
}

func (c *scriptedClient) GenerateContent(ctx context.Context, _ string, _ ModelTier) (string, error) {
	i := int(c.calls.Add(1)) - 1
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	c.jsonCalls.Add(1)
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *scriptedClient) GetModel(ModelTier) string { return "test-model" }

func (c *scriptedClient) Close() error { return nil }

func fastOptions() GatewayOptions {
	return GatewayOptions{Timeout: time.Second, Retries: 1, Backoff: time.Millisecond}
}

func TestGateway_Success(t *testing.T) {
	client := &scriptedClient{responses: []string{"Q1: hello"}}
	gw := NewGateway(client, fastOptions())

	text, err := gw.Generate(context.Background(), "prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "Q1: hello", text)
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestGateway_GenerateJSONUsesJSONMode(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("connection reset")}, responses: []string{"", `{"score": 7}`}}
	gw := NewGateway(client, fastOptions())

	text, err := gw.GenerateJSON(context.Background(), "prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, `{"score": 7}`, text)
	assert.Equal(t, int32(2), client.jsonCalls.Load())
}

func TestGateway_GenerateUsesTextMode(t *testing.T) {
	client := &scriptedClient{responses: []string{"plain"}}
	gw := NewGateway(client, fastOptions())

	_, err := gw.Generate(context.Background(), "prompt", TierStandard)
	require.NoError(t, err)
	assert.Zero(t, client.jsonCalls.Load())
}

func TestGateway_RetriesOnce(t *testing.T) {
	client := &scriptedClient{
		errs:      []error{errors.New("connection reset"), nil},
		responses: []string{"", "recovered"},
	}
	gw := NewGateway(client, fastOptions())

	text, err := gw.Generate(context.Background(), "prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestGateway_GivesUpAfterOneRetry(t *testing.T) {
	boom := errors.New("503 service unavailable")
	client := &scriptedClient{errs: []error{boom, boom, boom}}
	gw := NewGateway(client, fastOptions())

	_, err := gw.Generate(context.Background(), "prompt", TierStandard)
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 2, ue.Attempts)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestGateway_EmptyTextIsUpstreamError(t *testing.T) {
	client := &scriptedClient{responses: []string{"  ", ""}}
	gw := NewGateway(client, fastOptions())

	_, err := gw.Generate(context.Background(), "prompt", TierStandard)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.ErrorAs(t, err, new(*UpstreamError))
}

func TestGateway_Timeout(t *testing.T) {
	client := &scriptedClient{delay: 200 * time.Millisecond, responses: []string{"late", "late"}}
	gw := NewGateway(client, GatewayOptions{Timeout: 10 * time.Millisecond, Retries: 1, Backoff: time.Millisecond})

	_, err := gw.Generate(context.Background(), "prompt", TierStandard)
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "generation timed out", ue.Message)
	assert.Equal(t, 2, ue.Attempts)
}

func TestGateway_CancelledContextNotRetried(t *testing.T) {
	client := &scriptedClient{delay: time.Second}
	gw := NewGateway(client, fastOptions())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := gw.Generate(ctx, "prompt", TierStandard)
	assert.ErrorAs(t, err, new(*UpstreamError))
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestNewGateway_CapsRetries(t *testing.T) {
	gw := NewGateway(&scriptedClient{}, GatewayOptions{Retries: 5})
	assert.Equal(t, uint64(1), gw.opts.Retries)
	assert.Equal(t, DefaultGatewayOptions().Timeout, gw.opts.Timeout)
}
