package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/mock-interview/internal/types"
)

// questionLine matches "Q3: text", tolerating markdown bold around the label.
var questionLine = regexp.MustCompile(`(?i)^\s*\**\s*Q\d+\s*\**\s*:\s*\**\s*(.*)$`)

// ParseQuestions extracts the labelled question lines from a batch response.
// IDs are assigned sequentially from 1 in the order the lines appear.
// A response without any labelled line yields a Fallback with an empty slice.
func ParseQuestions(text string) Result[[]types.Question] {
	questions := make([]types.Question, 0)
	for _, line := range strings.Split(text, "\n") {
		m := questionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		q := strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "*"))
		if q == "" {
			continue
		}
		questions = append(questions, types.Question{ID: len(questions) + 1, Text: q})
	}

	if len(questions) == 0 {
		return fallback(questions, "no Q<n>: lines in response", nil)
	}
	return parsed(questions)
}
