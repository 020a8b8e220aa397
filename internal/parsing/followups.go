package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/mock-interview/internal/llm"
	"github.com/tidwall/gjson"
)

// MaxFollowUps is the number of follow-up questions kept from a response.
const MaxFollowUps = 2

var (
	// listPrefix matches "1.", "2)", "-", "*" or "•" list markers.
	listPrefix = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+`)
	// questionSpan matches a run of text ending in a question mark.
	questionSpan = regexp.MustCompile(`[^?\n]+\?`)
	separators   = regexp.MustCompile(`[?;\n]`)
)

// ParseFollowUps extracts up to two follow-up questions. It tries, in order,
// a JSON array of strings, prefixed or question-mark terminated lines,
// question-mark terminated spans, and finally a split on separators. Each
// strategy is used only if it yields at least one item, and only the JSON
// array counts as Parsed.
func ParseFollowUps(text string) Result[[]string] {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return fallback([]string{}, "empty follow-up response", nil)
	}

	stripped := llm.StripFences(raw)
	cleaned := llm.CleanJSONBlock(raw)
	if gjson.Valid(cleaned) {
		if arr := gjson.Parse(cleaned); arr.IsArray() {
			var items []string
			arr.ForEach(func(_, v gjson.Result) bool {
				if v.Type == gjson.String {
					items = append(items, v.String())
				}
				return true
			})
			if kept := dedupeItems(items, MaxFollowUps); len(kept) > 0 {
				return parsed(kept)
			}
			// Nothing usable at the top level; search the nested strings instead
			// of the JSON punctuation.
			stripped = strings.Join(jsonStrings(arr), "\n")
		}
	}

	if items := dedupeItems(followUpLines(stripped), MaxFollowUps); len(items) > 0 {
		return fallback(items, "follow-ups read from list lines", nil)
	}
	if items := dedupeItems(questionSpan.FindAllString(stripped, -1), MaxFollowUps); len(items) > 0 {
		return fallback(items, "follow-ups read from question spans", nil)
	}
	return fallback(splitFollowUps(stripped), "follow-ups split on separators", nil)
}

// jsonStrings collects every string value nested in v.
func jsonStrings(v gjson.Result) []string {
	if v.Type == gjson.String {
		return []string{v.String()}
	}
	if !v.IsArray() && !v.IsObject() {
		return nil
	}
	var out []string
	v.ForEach(func(_, child gjson.Result) bool {
		out = append(out, jsonStrings(child)...)
		return true
	})
	return out
}

func followUpLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if listPrefix.MatchString(trimmed) {
			lines = append(lines, listPrefix.ReplaceAllString(trimmed, ""))
			continue
		}
		if strings.HasSuffix(trimmed, "?") {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func splitFollowUps(text string) []string {
	parts := separators.Split(text, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		n := normalizeItem(p)
		if n == "" {
			continue
		}
		items = append(items, n+"?")
	}
	return dedupeItems(items, MaxFollowUps)
}
