package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLen bounds every sanitized free-text value, in characters.
const MaxTextLen = 1000

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// Sanitize trims s, drops every '<' and '>' and truncates to MaxTextLen
// characters. It strips tag delimiters only; it is not an HTML sanitizer.
//
// Whitespace exposed by the strip is trimmed as well so that a second pass
// is a no-op.
func Sanitize(s string) string {
	s = strings.TrimSpace(angleBrackets.Replace(strings.TrimSpace(s)))
	if utf8.RuneCountInString(s) <= MaxTextLen {
		return s
	}
	r := []rune(s)
	return string(r[:MaxTextLen])
}

// SanitizeValue applies Sanitize to strings and returns anything else as is.
func SanitizeValue(v any) any {
	switch s := v.(type) {
	case string:
		return Sanitize(s)
	case *string:
		if s == nil {
			return s
		}
		out := Sanitize(*s)
		return &out
	default:
		return v
	}
}
