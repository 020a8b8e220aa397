// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// StripFences removes every Markdown code-fence marker from model output,
// including language tags such as ```json or ```html on opening fences.
func StripFences(text string) string {
	if !strings.Contains(text, "```") {
		return strings.TrimSpace(text)
	}

	var sb strings.Builder
	rest := text
	opening := true
	for {
		idx := strings.Index(rest, "```")
		if idx < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:idx])
		rest = rest[idx+3:]
		// Drop a language identifier glued to an opening fence. Text after a
		// closing fence is kept.
		if opening {
			end := 0
			for end < len(rest) && isLangByte(rest[end]) {
				end++
			}
			if end < 20 {
				rest = rest[end:]
			}
		}
		opening = !opening
	}
	return strings.TrimSpace(sb.String())
}

func isLangByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '+'
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks or add conversational text
// around it even when instructed not to. When a balanced JSON object or array
// can be located it is returned; otherwise the fence-stripped text is.
func CleanJSONBlock(text string) string {
	text = StripFences(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var extracted string
	if text[start] == '{' {
		extracted = extractJSONObject(text[start:])
	} else {
		extracted = extractJSONArray(text[start:])
	}
	if extracted == "" {
		return text
	}
	return extracted
}

// extractJSONObject returns the balanced {...} prefix of text, or "".
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text, or "".
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, closeCh byte) string {
	if text == "" || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
