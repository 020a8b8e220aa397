package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/mock-interview/internal/types"
)

const promptFile = "interview.json"

// DefaultResumePrefix is the number of resume characters embedded in a prompt.
const DefaultResumePrefix = 4000

// Builder renders interview prompts. The zero value uses DefaultResumePrefix.
type Builder struct {
	ResumePrefix int
}

// NewBuilder returns a Builder that embeds at most resumePrefix runes of resume text.
func NewBuilder(resumePrefix int) *Builder {
	return &Builder{ResumePrefix: resumePrefix}
}

func (b *Builder) prefix() int {
	if b == nil || b.ResumePrefix <= 0 {
		return DefaultResumePrefix
	}
	return b.ResumePrefix
}

// QuestionBatch asks for exactly count "Q<n>: <text>" lines of increasing difficulty.
// The resume section is omitted when resumeText is blank.
func (b *Builder) QuestionBatch(role string, level int, resumeText string, count int) string {
	section := ""
	if resume := TruncateRunes(strings.TrimSpace(resumeText), b.prefix()); resume != "" {
		section = "\nCandidate resume:\n" + resume + "\n"
	}
	return Format(MustGet(promptFile, "question-batch"), map[string]string{
		"Role":          role,
		"Level":         strconv.Itoa(level),
		"LevelName":     types.LevelName(level),
		"ResumeSection": section,
		"Count":         strconv.Itoa(count),
	})
}

// SingleQuestion asks for one question tailored to the resume.
func (b *Builder) SingleQuestion(role string, level int, resumeText string, questionNumber int) string {
	return Format(MustGet(promptFile, "single-question"), map[string]string{
		"Role":           role,
		"Level":          strconv.Itoa(level),
		"Resume":         TruncateRunes(strings.TrimSpace(resumeText), b.prefix()),
		"QuestionNumber": strconv.Itoa(questionNumber),
	})
}

// EvaluateAnswer asks for a JSON {score, feedback} verdict.
func (b *Builder) EvaluateAnswer(question, answer string) string {
	return Format(MustGet(promptFile, "evaluate-answer"), map[string]string{
		"Question": question,
		"Answer":   answer,
	})
}

// FollowUps asks for two clarifying questions as a JSON array.
func (b *Builder) FollowUps(question, answer string) string {
	return Format(MustGet(promptFile, "follow-ups"), map[string]string{
		"Question": question,
		"Answer":   answer,
	})
}

// Report asks for the sectioned HTML report over the answered questions.
func (b *Builder) Report(role string, level int, answers []types.AnswerRecord) string {
	return Format(MustGet(promptFile, "generate-report"), map[string]string{
		"Role":       role,
		"Level":      strconv.Itoa(level),
		"LevelName":  types.LevelName(level),
		"Score":      strconv.FormatFloat(types.AverageScore(answers), 'f', -1, 64),
		"Transcript": transcript(answers),
	})
}

// ResumeCritique asks for an HTML critique of a resume.
func (b *Builder) ResumeCritique(resumeText string) string {
	return Format(MustGet(promptFile, "resume-critique"), map[string]string{
		"Resume": TruncateRunes(strings.TrimSpace(resumeText), b.prefix()),
	})
}

func transcript(answers []types.AnswerRecord) string {
	if len(answers) == 0 {
		return "(no questions were answered)"
	}
	var sb strings.Builder
	for i, a := range answers {
		fmt.Fprintf(&sb, "Q%d: %s\nAnswer: %s\nScore: %d/10\nFeedback: %s\n\n",
			i+1, a.Question, a.Answer, a.Score, a.Feedback)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
