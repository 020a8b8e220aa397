package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/llm"
	"github.com/jonathan/mock-interview/internal/prompts"
	"github.com/jonathan/mock-interview/internal/resumes"
	"github.com/jonathan/mock-interview/internal/server"
	"github.com/jonathan/mock-interview/internal/server/ratelimit"
	"github.com/jonathan/mock-interview/internal/session"
	"github.com/jonathan/mock-interview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ session.API = (*Client)(nil)

type scriptedGenerator struct {
	byMarker map[string]string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	for marker, text := range g.byMarker {
		if strings.Contains(prompt, marker) {
			return text, nil
		}
	}
	return "", &llm.UpstreamError{Message: "no script", Cause: llm.ErrEmptyResponse}
}

const resume = "Alex Kim. Platform engineer. Built Kubernetes operators in Go and ran Postgres at scale."

func newBackend(t *testing.T, evaluation string) (*httptest.Server, resumes.Store) {
	t.Helper()
	gen := &scriptedGenerator{byMarker: map[string]string{
		"interview questions":       "Q1: First?\nQ2: Second?\nQ3: Third?",
		"Ask ONE technical":         "Describe your operator design.",
		"experienced mentor giving": evaluation,
		"clarifying follow-up":      "1. Why that way?\n2. What broke?",
		"final report":              `<div class="report-section"><h3>Overall Performance</h3><p>Fine</p></div>`,
		"technical recruiter":       "<p>Strong resume</p>",
	}}
	store := resumes.NewMemoryStore()
	srv := server.New(server.Config{RateLimit: &ratelimit.Config{Enabled: false}},
		interview.NewService(gen, prompts.NewBuilder(0), store))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func TestClient_InterviewEndpoints(t *testing.T) {
	ctx := context.Background()
	ts, _ := newBackend(t, `{"score": 9, "feedback": "Great."}`)
	c := New(ts.URL+"/", "s1")

	require.NoError(t, c.Health(ctx))

	qs, err := c.Questions(ctx, "SRE", 1)
	require.NoError(t, err)
	assert.Equal(t, []types.Question{{ID: 1, Text: "First?"}, {ID: 2, Text: "Second?"}, {ID: 3, Text: "Third?"}}, qs)

	eval, err := c.Evaluate(ctx, "First?", "Answer")
	require.NoError(t, err)
	assert.Equal(t, types.Evaluation{Score: 9, Feedback: "Great."}, eval)

	followUps, err := c.FollowUps(ctx, "First?", "Answer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Why that way?", "What broke?"}, followUps)

	report, err := c.Report(ctx, "SRE", 1, []types.AnswerRecord{{Question: "q", Answer: "a", Score: 7}})
	require.NoError(t, err)
	assert.Equal(t, float64(7), report.AverageScore)
	assert.Contains(t, report.HTMLBody, "Overall Performance")
	assert.Empty(t, report.RoadmapHTML)
}

func TestClient_ResumeFlow(t *testing.T) {
	ctx := context.Background()
	ts, store := newBackend(t, `{"score": 5, "feedback": "ok"}`)
	c := New(ts.URL, "s2")

	_, err := c.Question(ctx, "SRE", 2, 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, interview.MsgResumeRequired, apiErr.Message)

	msg, err := c.UploadResume(ctx, "resume.txt", strings.NewReader(resume))
	require.NoError(t, err)
	assert.Equal(t, interview.MsgResumeUploaded, msg)

	text, ok, err := store.Get(ctx, "s2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, resume, text)

	q, err := c.Question(ctx, "SRE", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Describe your operator design.", q)

	critique, err := c.EvaluateResume(ctx, "resume.txt", strings.NewReader(resume))
	require.NoError(t, err)
	assert.Equal(t, "<p>Strong resume</p>", critique)
}

func TestClient_UploadErrors(t *testing.T) {
	ts, _ := newBackend(t, "")
	c := New(ts.URL, "")

	_, err := c.UploadResume(context.Background(), "photo.png", strings.NewReader("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, apiErr.Status)
	assert.Equal(t, interview.MsgUnsupportedFile, apiErr.Message)
}

func TestDecodeEvaluation(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   types.Evaluation
	}{
		{"valid", `{"score":8,"feedback":"Good"}`, types.Evaluation{Score: 8, Feedback: "Good"}},
		{"not json", "plain words", types.Evaluation{Score: 5, Feedback: "plain words"}},
		{"out of range", `{"score":14,"feedback":"x"}`, types.Evaluation{Score: 10, Feedback: "x"}},
		{"missing score", `{"feedback":"x"}`, types.Evaluation{Score: 5, Feedback: "x"}},
		{"json number", "42", types.Evaluation{Score: 5, Feedback: "42"}},
		{"json null", "null", types.Evaluation{Score: 5, Feedback: "null"}},
		{"json array", `["a","b"]`, types.Evaluation{Score: 5, Feedback: `["a","b"]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeEvaluation(tt.result))
		})
	}
}

func TestClient_ServerDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	_, err := New(ts.URL, "").Questions(context.Background(), "SRE", 1)
	assert.Error(t, err)
}
