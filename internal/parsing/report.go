package parsing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/mock-interview/internal/llm"
)

// RoadmapHeading is the section title that carries the learning roadmap.
const RoadmapHeading = "Personalized Roadmap"

// ReportParts is the report body split from its roadmap section.
type ReportParts struct {
	Body    string
	Roadmap string
}

var (
	roadmapHeading = regexp.MustCompile(`(?im)<h[1-6][^>]*>[^<]*personalized roadmap[^<]*</h[1-6]>|^#{1,6}[^\n]*personalized roadmap[^\n]*$`)
	nextSection    = regexp.MustCompile(`(?im)<div[^>]*report-section|<h[1-6][^>]*>|^#{1,6}\s`)
)

// ParseReport strips code fences and separates the Personalized Roadmap
// section from the rest of the report. Without a roadmap the whole text is
// the body and the result is a Fallback.
func ParseReport(text string) Result[ReportParts] {
	stripped := llm.StripFences(text)
	if stripped == "" {
		return fallback(ReportParts{}, "empty report", nil)
	}

	if parts, ok := splitRoadmapHTML(stripped); ok {
		return parsed(parts)
	}
	if parts, ok := splitRoadmapText(stripped); ok {
		return parsed(parts)
	}
	return fallback(ReportParts{Body: stripped}, "no roadmap section", nil)
}

// splitRoadmapHTML finds a .report-section whose heading names the roadmap.
func splitRoadmapHTML(text string) (ReportParts, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ReportParts{}, false
	}

	var section *goquery.Selection
	doc.Find(".report-section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		heading := s.Find("h1, h2, h3, h4, h5, h6").First().Text()
		if strings.Contains(strings.ToLower(heading), strings.ToLower(RoadmapHeading)) {
			section = s
			return false
		}
		return true
	})
	if section == nil {
		return ReportParts{}, false
	}

	roadmap, err := goquery.OuterHtml(section)
	if err != nil {
		return ReportParts{}, false
	}
	section.Remove()
	body, err := doc.Find("body").Html()
	if err != nil {
		return ReportParts{}, false
	}
	return ReportParts{Body: strings.TrimSpace(body), Roadmap: strings.TrimSpace(roadmap)}, true
}

// splitRoadmapText handles loosely structured output: the roadmap runs from its
// heading to the next section heading or the end of the text.
func splitRoadmapText(text string) (ReportParts, bool) {
	loc := roadmapHeading.FindStringIndex(text)
	if loc == nil {
		return ReportParts{}, false
	}
	end := len(text)
	if next := nextSection.FindStringIndex(text[loc[1]:]); next != nil {
		end = loc[1] + next[0]
	}
	return ReportParts{
		Body:    strings.TrimSpace(text[:loc[0]] + text[end:]),
		Roadmap: strings.TrimSpace(text[loc[0]:end]),
	}, true
}
