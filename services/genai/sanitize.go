package genai

import "strings"

// sanitizeJSON prepares a raw model response for parsing: code-fence
// markers are stripped and quote characters that appear unescaped inside
// string values are escaped. The function is idempotent, so feeding an
// already-sanitized response through it again yields identical text.
func sanitizeJSON(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	return escapeUnescapedQuotes(s)
}

// escapeUnescapedQuotes walks the text tracking string state. A quote seen
// inside a string only terminates it when the next non-space character is a
// structural one (comma, colon, closing brace or bracket, or end of input);
// any other quote is an unescaped quote inside the value and gets escaped.
func escapeUnescapedQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	inString := false
	escaped := false

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteRune(c)
			continue
		}

		if escaped {
			escaped = false
			b.WriteRune(c)
			continue
		}

		switch c {
		case '\\':
			escaped = true
			b.WriteRune(c)
		case '"':
			if terminatesString(runes, i+1) {
				inString = false
				b.WriteRune(c)
			} else {
				b.WriteString(`\"`)
			}
		default:
			b.WriteRune(c)
		}
	}

	return b.String()
}

func terminatesString(runes []rune, from int) bool {
	for i := from; i < len(runes); i++ {
		switch runes[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}
	return true
}
