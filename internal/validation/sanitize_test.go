package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello  ", "hello"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"<b>bold</b> text", "bbold/b text"},
		{"a < b > c", "a  b  c"},
		{"< padded >", "padded"},
		{"&amp; \"quoted\"", "&amp; \"quoted\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"  spaced out  ",
		"<script>x</script>",
		"< leading bracket",
		strings.Repeat("é", MaxTextLen),
		"tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("x", MaxTextLen+250)
	assert.Len(t, []rune(Sanitize(long)), MaxTextLen)

	// counted in characters, not bytes
	multi := strings.Repeat("ü", MaxTextLen+1)
	assert.Len(t, []rune(Sanitize(multi)), MaxTextLen)

	// brackets are stripped before the length is measured
	bracketed := strings.Repeat("<", 10) + strings.Repeat("y", MaxTextLen)
	assert.Equal(t, strings.Repeat("y", MaxTextLen), Sanitize(bracketed))
}

func TestSanitizeValuePassesNonText(t *testing.T) {
	assert.Equal(t, 42, SanitizeValue(42))
	assert.Nil(t, SanitizeValue(nil))
	assert.Equal(t, []string{"<a>"}, SanitizeValue([]string{"<a>"}))
	assert.Equal(t, "a", SanitizeValue(" <a> "))

	var np *string
	assert.Equal(t, np, SanitizeValue(np))
	s := " <b> "
	assert.Equal(t, "b", *SanitizeValue(&s).(*string))
}
