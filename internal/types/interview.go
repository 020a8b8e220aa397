// Package types provides type definitions for structured data shared by the
// mock-interview server and its clients.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// DefaultQuestionCount is used for levels outside the fixed table.
const DefaultQuestionCount = 7

// levelQuestionCounts maps an interview level to the number of questions asked.
var levelQuestionCounts = map[int]int{
	1: 3,
	2: 5,
	3: 7,
	4: 10,
}

// QuestionCount returns how many questions an interview at the given level asks.
// Unknown levels fall back to the mid-tier count instead of failing.
func QuestionCount(level int) int {
	if n, ok := levelQuestionCounts[level]; ok {
		return n
	}
	return DefaultQuestionCount
}

var levelNames = map[int]string{
	1: "Beginner",
	2: "Intermediate",
	3: "Advanced",
	4: "Expert",
}

// LevelName returns a human label for the level, "Intermediate" when unknown.
func LevelName(level int) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "Intermediate"
}

// InterviewConfig is the immutable configuration captured when an interview starts.
type InterviewConfig struct {
	Role          string `json:"role" validate:"required,max=200"`
	Level         int    `json:"level" validate:"min=1,max=4"`
	QuestionCount int    `json:"question_count"`
	// TimeLimitSeconds starts a countdown when positive.
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty" validate:"min=0"`
}

// NewInterviewConfig builds a config with the question count derived from level.
func NewInterviewConfig(role string, level, timeLimitSeconds int) InterviewConfig {
	return InterviewConfig{
		Role:             role,
		Level:            level,
		QuestionCount:    QuestionCount(level),
		TimeLimitSeconds: timeLimitSeconds,
	}
}

// Validate validates the InterviewConfig using the validator.
func (c *InterviewConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Question is a single generated interview question.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Evaluation is the model's verdict on one answer.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// AnswerRecord captures one answered question and its evaluation.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Report is the end-of-session summary.
type Report struct {
	AverageScore float64 `json:"score"`
	HTMLBody     string  `json:"report"`
	RoadmapHTML  string  `json:"roadmap,omitempty"`
}

// AverageScore returns round(mean(scores)) over the answers, or 0 when there are none.
func AverageScore(answers []AnswerRecord) float64 {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return math.Round(float64(total) / float64(len(answers)))
}

// ScoreLabel returns the qualitative label shown next to a report score.
func ScoreLabel(score float64) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	default:
		return "Needs Work"
	}
}
