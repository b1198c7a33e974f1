package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"bug-tracker/internal/models"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsValidStatus(v string) bool { return models.Status(v).Valid() }

func IsValidPriority(v string) bool { return models.Priority(v).Valid() }

// IsValidEmail is a coarse local@domain.tld shape check, not RFC 5322.
func IsValidEmail(v string) bool { return emailRe.MatchString(v) }

// MeetsMinLength reports whether v is a string whose trimmed length is at
// least minLen characters. Non-strings never qualify.
func MeetsMinLength(v any, minLen int) bool {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case *string:
		if x == nil {
			return false
		}
		s = *x
	default:
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minLen
}
