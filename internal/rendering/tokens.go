package rendering

import "strings"

// Tokenize splits a template body into words and separators. Every space
// and newline is its own token and words keep their bytes, so joining the
// tokens gives back the body.
func Tokenize(body string) []string {
	tokens := make([]string, 0, len(body)/4)
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] != ' ' && body[i] != '\n' {
			continue
		}
		if i > start {
			tokens = append(tokens, body[start:i])
		}
		tokens = append(tokens, body[i:i+1])
		start = i + 1
	}
	if start < len(body) {
		tokens = append(tokens, body[start:])
	}
	return tokens
}

// Join concatenates tokens back into text.
func Join(tokens []string) string {
	return strings.Join(tokens, "")
}

func isBlank(token string) bool {
	return strings.TrimSpace(token) == ""
}
