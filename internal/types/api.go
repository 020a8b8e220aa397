//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// SessionHeader carries the client session identifier that keys the uploaded resume.
const SessionHeader = "X-Session-ID"

// QuestionsRequest is the body of POST /questions.
type QuestionsRequest struct {
	Role  string `json:"role" validate:"required"`
	Level int    `json:"level"`
}

// QuestionsResponse is the body returned by POST /questions.
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// QuestionRequest is the body of POST /question.
type QuestionRequest struct {
	Role           string `json:"role" validate:"required"`
	Level          int    `json:"level"`
	QuestionNumber int    `json:"questionNumber" validate:"min=0"`
}

// QuestionResponse is the body returned by POST /question.
type QuestionResponse struct {
	Question string `json:"question"`
}

// AnswerRequest is the body of POST /evaluate and POST /followups.
type AnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// EvaluateResponse is the body returned by POST /evaluate.
// Result holds a JSON-encoded Evaluation.
type EvaluateResponse struct {
	Result string `json:"result"`
}

// FollowUpsResponse is the body returned by POST /followups.
type FollowUpsResponse struct {
	FollowUps []string `json:"followUps"`
}

// ReportRequest is the body of POST /generate-report.
type ReportRequest struct {
	Role    string         `json:"role" validate:"required"`
	Level   int            `json:"level"`
	Answers []AnswerRecord `json:"answers" validate:"dive"`
}

// ReportResponse is the body returned by POST /generate-report.
type ReportResponse struct {
	Report  string  `json:"report"`
	Roadmap string  `json:"roadmap"`
	Score   float64 `json:"score"`
}

// MessageResponse is returned by POST /upload-resume on success.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResumeEvaluationResponse is returned by POST /evaluate-resume.
type ResumeEvaluationResponse struct {
	Result string `json:"result"`
}

// Validate validates the QuestionsRequest using the validator.
func (r *QuestionsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the QuestionRequest using the validator.
func (r *QuestionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReportRequest using the validator.
func (r *ReportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
