// Package apiclient is an HTTP client for the mock interview server.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/mock-interview/internal/parsing"
	"github.com/jonathan/mock-interview/internal/types"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds each request. Server-side model calls may retry once.
const DefaultTimeout = 3 * time.Minute

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client calls the interview endpoints on behalf of one session.
type Client struct {
	http *resty.Client
}

// New creates a client for the server at baseURL. The session id is sent with
// every request so uploads and tailored questions share one resume slot.
func New(baseURL, sessionID string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")
	if sessionID != "" {
		c.SetHeader(types.SessionHeader, sessionID)
	}
	return &Client{http: c}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.SetTimeout(d)
}

func (c *Client) post(ctx context.Context, path string, body, result any) (*resty.Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return resp, nil
}

// apiError builds an APIError from a failed response, preferring the
// server's error or question message.
func apiError(resp *resty.Response) error {
	body := resp.Body()
	msg := gjson.GetBytes(body, "error").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "question").String()
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("GET /health: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// Questions fetches the question batch for an interview.
func (c *Client) Questions(ctx context.Context, role string, level int) ([]types.Question, error) {
	var out types.QuestionsResponse
	resp, err := c.post(ctx, "/questions", types.QuestionsRequest{Role: role, Level: level}, &out)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Questions == nil {
		out.Questions = []types.Question{}
	}
	return out.Questions, nil
}

// Question fetches one question tailored to the session's resume.
func (c *Client) Question(ctx context.Context, role string, level, questionNumber int) (string, error) {
	var out types.QuestionResponse
	req := types.QuestionRequest{Role: role, Level: level, QuestionNumber: questionNumber}
	resp, err := c.post(ctx, "/question", req, &out)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp)
	}
	return out.Question, nil
}

// Evaluate scores an answer. A result that is not a JSON object becomes a
// neutral score with the raw text as feedback.
func (c *Client) Evaluate(ctx context.Context, question, answer string) (types.Evaluation, error) {
	var out types.EvaluateResponse
	resp, err := c.post(ctx, "/evaluate", types.AnswerRequest{Question: question, Answer: answer}, &out)
	if err != nil {
		return types.Evaluation{}, err
	}
	if resp.IsError() {
		return types.Evaluation{}, apiError(resp)
	}
	return decodeEvaluation(out.Result), nil
}

func decodeEvaluation(result string) types.Evaluation {
	if !gjson.Valid(result) {
		return types.Evaluation{Score: parsing.FallbackScore, Feedback: result}
	}
	parsed := gjson.Parse(result)
	if !parsed.IsObject() {
		return types.Evaluation{Score: parsing.FallbackScore, Feedback: result}
	}
	eval := types.Evaluation{
		Score:    parsing.FallbackScore,
		Feedback: parsed.Get("feedback").String(),
	}
	if score := parsed.Get("score"); score.Exists() {
		eval.Score = parsing.ClampScore(score.Float())
	}
	return eval
}

// FollowUps fetches clarifying questions about an answer.
func (c *Client) FollowUps(ctx context.Context, question, answer string) ([]string, error) {
	var out types.FollowUpsResponse
	resp, err := c.post(ctx, "/followups", types.AnswerRequest{Question: question, Answer: answer}, &out)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return out.FollowUps, nil
}

// Report requests the end-of-session report.
func (c *Client) Report(ctx context.Context, role string, level int, answers []types.AnswerRecord) (types.Report, error) {
	var out types.ReportResponse
	req := types.ReportRequest{Role: role, Level: level, Answers: answers}
	resp, err := c.post(ctx, "/generate-report", req, &out)
	if err != nil {
		return types.Report{}, err
	}
	if resp.IsError() {
		return types.Report{}, apiError(resp)
	}
	return types.Report{AverageScore: out.Score, HTMLBody: out.Report, RoadmapHTML: out.Roadmap}, nil
}

func (c *Client) upload(ctx context.Context, path, filename string, r io.Reader, result any) (*resty.Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("resume", filename, r).
		SetResult(result).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return resp, nil
}

// UploadResume stores a resume for this session and returns the server's message.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out types.MessageResponse
	resp, err := c.upload(ctx, "/upload-resume", filename, r, &out)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp)
	}
	return out.Message, nil
}

// EvaluateResume returns the server's HTML critique of a resume.
func (c *Client) EvaluateResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out types.ResumeEvaluationResponse
	resp, err := c.upload(ctx, "/evaluate-resume", filename, r, &out)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp)
	}
	return out.Result, nil
}
