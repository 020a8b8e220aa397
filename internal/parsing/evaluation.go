package parsing

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/mock-interview/internal/llm"
	"github.com/jonathan/mock-interview/internal/types"
	"github.com/tidwall/gjson"
)

const (
	// FallbackScore is the neutral score used when an evaluation cannot be read.
	FallbackScore = 5
	// FallbackFeedback is used when the model returned nothing at all.
	FallbackFeedback = "Failed."
)

// ParseEvaluation reads a {score, feedback} verdict, tolerating code fences and
// surrounding prose. Scores are rounded and clamped to 0..10. Anything else
// yields a Fallback carrying the neutral score and the raw text as feedback.
func ParseEvaluation(text string) Result[types.Evaluation] {
	raw := strings.TrimSpace(text)
	fb := types.Evaluation{Score: FallbackScore, Feedback: raw}
	if raw == "" {
		fb.Feedback = FallbackFeedback
		return fallback(fb, "empty evaluation", nil)
	}

	cleaned := llm.CleanJSONBlock(raw)
	if !gjson.Valid(cleaned) || !gjson.Parse(cleaned).IsObject() {
		return fallback(fb, "evaluation is not a JSON object", nil)
	}

	score, ok := readScore(gjson.Get(cleaned, "score"))
	if !ok {
		return fallback(fb, "missing numeric score", nil)
	}
	feedback := gjson.Get(cleaned, "feedback")
	if feedback.Type != gjson.String {
		return fallback(fb, "missing feedback string", nil)
	}

	return parsed(types.Evaluation{
		Score:    ClampScore(score),
		Feedback: strings.TrimSpace(feedback.String()),
	})
}

// readScore accepts JSON numbers and numeric strings such as "7" or "7.5".
func readScore(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ClampScore rounds a score to the nearest integer within 0..10.
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return FallbackScore
	}
	s := math.Round(score)
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return int(s)
}
