package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"open", "in-progress", "resolved", "closed"} {
		assert.True(t, IsValidStatus(s), s)
	}
	for _, s := range []string{"", "in-progres", "Open", " open", "done", "in_progress"} {
		assert.False(t, IsValidStatus(s), s)
	}
}

func TestIsValidPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high", "critical"} {
		assert.True(t, IsValidPriority(p), p)
	}
	for _, p := range []string{"", "urgent", "HIGH", "med"} {
		assert.False(t, IsValidPriority(p), p)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("john@example.com"))
	assert.True(t, IsValidEmail("a.b@c.d"))
	assert.False(t, IsValidEmail("john@example"))
	assert.False(t, IsValidEmail("john example@x.com"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestMeetsMinLength(t *testing.T) {
	assert.True(t, MeetsMinLength("abc", 3))
	assert.True(t, MeetsMinLength("  abc  ", 3))
	assert.False(t, MeetsMinLength("  ab  ", 3))
	assert.True(t, MeetsMinLength("", 0))

	for _, n := range []int{-1, 0, 1, 100} {
		assert.False(t, MeetsMinLength(nil, n))
		assert.False(t, MeetsMinLength(12345, n))
		assert.False(t, MeetsMinLength([]string{"abcdef"}, n))
		assert.False(t, MeetsMinLength((*string)(nil), n))
	}
}
