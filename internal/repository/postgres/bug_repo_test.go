package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
)

func TestBuildBugWhere(t *testing.T) {
	sql, args := buildBugWhere(repository.BugFilter{})
	assert.Equal(t, "WHERE 1=1", sql)
	assert.Empty(t, args)

	sql, args = buildBugWhere(repository.BugFilter{Status: models.StatusOpen, Priority: models.PriorityHigh})
	assert.Equal(t, "WHERE 1=1 AND status = $1 AND priority = $2", sql)
	assert.Equal(t, []any{"open", "high"}, args)
}

func TestSortColumnsCoverParseSort(t *testing.T) {
	for _, s := range []string{"", "createdAt", "-updatedAt", "title", "-status", "priority", "bogus"} {
		k := repository.ParseSort(s)
		assert.NotEmpty(t, sortColumns[k.Field], s)
	}
}
