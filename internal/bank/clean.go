package bank

import (
	"regexp"
	"strings"
)

var (
	optionLabelPattern = regexp.MustCompile(`^[A-Da-d]\s*[.)]\s*`)
	answerLetter       = regexp.MustCompile(`^[A-Da-d]$`)
	optionDelimiters   = regexp.MustCompile(`[;|,]`)
)

// CleanOption normalizes a raw option token: whitespace is trimmed, one layer
// of wrapping braces or parentheses is removed, and a leading "A." / "b)"
// style label is stripped.
func CleanOption(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '{' && last == '}') || (first == '(' && last == ')') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	s = optionLabelPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// isAnswerLetter reports whether s is a bare A-D letter, ignoring case and
// surrounding whitespace.
func isAnswerLetter(s string) bool {
	return answerLetter.MatchString(strings.TrimSpace(s))
}

// splitCombinedOptions splits a combined option field on semicolons, pipes
// and commas, dropping blank pieces and cleaning the rest. Order is kept.
func splitCombinedOptions(s string) []string {
	var out []string
	for _, p := range optionDelimiters.Split(s, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, CleanOption(p))
	}
	return out
}

// joinFields trims each field and joins the non-empty ones with a space.
func joinFields(fields []string) string {
	var kept []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
