package parsing

import (
	"strings"
)

// surroundingQuotes are stripped from list items the model quoted.
const surroundingQuotes = "\"'`“”‘’"

// normalizeItem trims whitespace, stray JSON punctuation and surrounding quotes.
func normalizeItem(item string) string {
	s := strings.Trim(item, " \t\r,[]")
	s = strings.Trim(s, surroundingQuotes)
	return strings.TrimSpace(s)
}

// dedupeItems normalizes items, dropping empties and case-insensitive duplicates,
// and keeps at most limit entries in their original order.
func dedupeItems(items []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		n := normalizeItem(item)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
