// Package interview orchestrates prompt building, model calls and response
// parsing for each interview operation. Model and parse failures are absorbed
// here and replaced with fallback content.
package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/mock-interview/internal/ingestion"
	"github.com/jonathan/mock-interview/internal/llm"
	"github.com/jonathan/mock-interview/internal/parsing"
	"github.com/jonathan/mock-interview/internal/prompts"
	"github.com/jonathan/mock-interview/internal/resumes"
	"github.com/jonathan/mock-interview/internal/types"
)

// MinResumeChars is the shortest resume accepted for tailored questions.
const MinResumeChars = 50

// Service implements the interview operations.
type Service struct {
	gen     llm.Generator
	prompts *prompts.Builder
	resumes resumes.Store
}

// NewService creates a Service. A nil builder uses the default resume prefix.
func NewService(gen llm.Generator, builder *prompts.Builder, store resumes.Store) *Service {
	if builder == nil {
		builder = prompts.NewBuilder(0)
	}
	return &Service{gen: gen, prompts: builder, resumes: store}
}

// resume returns the stored resume for the session, or "" when none is available.
func (s *Service) resume(ctx context.Context, sessionID string) string {
	text, ok, err := s.resumes.Get(ctx, sessionID)
	if err != nil {
		log.Printf("[resume] failed to load resume for %s: %v", resumes.KeyOrDefault(sessionID), err)
		return ""
	}
	if !ok {
		return ""
	}
	return text
}

// generateJSON uses the generator's JSON mode when it has one.
func (s *Service) generateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if jg, ok := s.gen.(llm.JSONGenerator); ok {
		return jg.GenerateJSON(ctx, prompt, tier)
	}
	return s.gen.Generate(ctx, prompt, tier)
}

// Questions generates the full question batch for an interview. The result is
// empty when the model fails or returns nothing usable.
func (s *Service) Questions(ctx context.Context, sessionID, role string, level int) []types.Question {
	count := types.QuestionCount(level)
	prompt := s.prompts.QuestionBatch(role, level, s.resume(ctx, sessionID), count)

	text, err := s.gen.Generate(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Printf("[interview] question batch failed: %v", err)
		return []types.Question{}
	}

	result := parsing.ParseQuestions(text)
	if !result.OK() {
		log.Printf("[interview] question batch unusable: %v", result.Reason)
		return []types.Question{}
	}
	questions := result.Value
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}

// Question generates one question tailored to the session's resume.
func (s *Service) Question(ctx context.Context, sessionID, role string, level, questionNumber int) (string, error) {
	resume := strings.TrimSpace(s.resume(ctx, sessionID))
	if utf8.RuneCountInString(resume) < MinResumeChars {
		return "", ErrResumeRequired
	}

	text, err := s.gen.Generate(ctx, s.prompts.SingleQuestion(role, level, resume, questionNumber), llm.TierStandard)
	if err != nil {
		log.Printf("[interview] question %d failed: %v", questionNumber, err)
		if errors.Is(err, llm.ErrEmptyResponse) {
			return MsgQuestionFailed, nil
		}
		return MsgServerError, nil
	}
	return strings.TrimSpace(llm.StripFences(text)), nil
}

// Evaluate scores an answer and returns the JSON-encoded Evaluation.
func (s *Service) Evaluate(ctx context.Context, question, answer string) string {
	text, err := s.generateJSON(ctx, s.prompts.EvaluateAnswer(question, answer), llm.TierStandard)
	if err != nil {
		log.Printf("[interview] evaluation failed: %v", err)
		feedback := MsgServerError
		if errors.Is(err, llm.ErrEmptyResponse) {
			feedback = parsing.FallbackFeedback
		}
		return encodeEvaluation(types.Evaluation{Score: parsing.FallbackScore, Feedback: feedback})
	}

	result := parsing.ParseEvaluation(text)
	if !result.OK() {
		log.Printf("[interview] evaluation fallback: %v", result.Reason)
	}
	return encodeEvaluation(result.Value)
}

func encodeEvaluation(e types.Evaluation) string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"score":%d,"feedback":""}`, e.Score)
	}
	return string(b)
}

// FollowUps returns up to two clarifying questions, possibly none.
func (s *Service) FollowUps(ctx context.Context, question, answer string) []string {
	text, err := s.generateJSON(ctx, s.prompts.FollowUps(question, answer), llm.TierLite)
	if err != nil {
		log.Printf("[interview] follow-ups failed: %v", err)
		return []string{}
	}
	result := parsing.ParseFollowUps(text)
	if !result.OK() {
		log.Printf("[interview] follow-ups fallback: %v", result.Reason)
	}
	return result.Value
}

// Report builds the end-of-session report. The score is computed locally and
// does not depend on the model.
func (s *Service) Report(ctx context.Context, role string, level int, answers []types.AnswerRecord) types.Report {
	report := types.Report{AverageScore: types.AverageScore(answers)}

	text, err := s.gen.Generate(ctx, s.prompts.Report(role, level, answers), llm.TierAdvanced)
	if err != nil {
		log.Printf("[interview] report failed: %v", err)
		report.HTMLBody = MsgReportFailed
		return report
	}

	parts := parsing.ParseReport(text).Value
	report.HTMLBody = parts.Body
	report.RoadmapHTML = parts.Roadmap
	return report
}

// UploadResume extracts text from an uploaded file and stores it for the
// session, replacing any previous upload.
func (s *Service) UploadResume(ctx context.Context, sessionID, filename, contentType string, data []byte) error {
	if len(data) == 0 {
		return ErrNoFile
	}

	text, err := extract(filename, contentType, data)
	if err != nil {
		return err
	}

	if err := s.resumes.Put(ctx, sessionID, text); err != nil {
		return fmt.Errorf("failed to store resume: %w", err)
	}

	meta := ingestion.NewMetadata(filename, formatOf(filename, contentType), text)
	log.Printf("[resume] stored %d chars for %s (file=%s sha256=%.12s)",
		meta.Characters, resumes.KeyOrDefault(sessionID), meta.Filename, meta.Hash)
	return nil
}

// EvaluateResume returns an HTML critique of an uploaded resume. It does not
// touch the session's stored resume.
func (s *Service) EvaluateResume(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoFile
	}

	text, err := extract(filename, contentType, data)
	if err != nil {
		return "", err
	}

	critique, err := s.gen.Generate(ctx, s.prompts.ResumeCritique(text), llm.TierAdvanced)
	if err != nil {
		log.Printf("[interview] resume critique failed: %v", err)
		return MsgCritiqueFailed, nil
	}
	return llm.StripFences(critique), nil
}

func extract(filename, contentType string, data []byte) (string, error) {
	text, err := ingestion.Extract(filename, contentType, data)
	if err != nil {
		var unsupported *ingestion.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return "", &InputError{Message: MsgUnsupportedFile, Cause: err}
		}
		return "", err
	}
	return text, nil
}

func formatOf(filename, contentType string) ingestion.Format {
	format, _ := ingestion.DetectFormat(filename, contentType)
	return format
}
