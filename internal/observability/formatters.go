// Package observability provides formatted terminal output for the interview CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jonathan/mock-interview/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxFollowUpsToShow caps the follow-up list
	maxFollowUpsToShow = 2
)

// Printer handles formatted output for the interactive client
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content, wrapping long lines.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrapLine(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrapLine splits line on spaces so no piece exceeds width runes. Words longer
// than width are cut.
func wrapLine(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// HTMLToText converts model-written HTML to Markdown for the terminal. The
// input is returned trimmed when conversion fails.
func HTMLToText(html string) string {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(md)
}

// PrintQuestion shows the question being asked.
func (p *Printer) PrintQuestion(number, total int, q types.Question) {
	p.printBox(fmt.Sprintf("QUESTION %d/%d", number, total), "Interviewer: "+q.Text)
}

// PrintEvaluation shows the score and feedback for one answer.
func (p *Printer) PrintEvaluation(eval types.Evaluation) {
	p.printBox("EVALUATION", fmt.Sprintf("Score:    %d/10\nFeedback: %s", eval.Score, eval.Feedback))
}

// PrintFollowUps lists clarifying questions, if any.
func (p *Printer) PrintFollowUps(followUps []string) {
	if len(followUps) == 0 {
		return
	}
	var sb strings.Builder
	for i, f := range followUps {
		if i == maxFollowUpsToShow {
			break
		}
		sb.WriteString(fmt.Sprintf("• %s\n", f))
	}
	p.printBox("FOLLOW-UP QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport shows the final score with its label, the report body and the roadmap.
func (p *Printer) PrintReport(report types.Report) {
	summary := fmt.Sprintf("Overall Performance: %.0f/10 (%s)", report.AverageScore, types.ScoreLabel(report.AverageScore))
	p.printBox("YOUR INTERVIEW REPORT", summary)

	if body := HTMLToText(report.HTMLBody); body != "" {
		p.printBox("REPORT", body)
	}
	if report.RoadmapHTML != "" {
		p.printBox("PERSONALIZED ROADMAP", HTMLToText(report.RoadmapHTML))
	}
}

// PrintHTML renders an HTML fragment, such as a resume critique, in a box.
func (p *Printer) PrintHTML(title, html string) {
	p.printBox(strings.ToUpper(title), HTMLToText(html))
}

// PrintTimeLeft shows the remaining interview time.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTimeLeft(seconds int, paused bool) {
	if paused {
		fmt.Fprintln(p.out, "⏱  Time is up. You may keep answering; the clock is paused.")
		return
	}
	fmt.Fprintf(p.out, "⏱  Time left: %02d:%02d\n", seconds/60, seconds%60)
}

// PrintMessage writes a single status line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
