package repository

import (
	"fmt"
	"sort"
	"strings"

	"bug-tracker/internal/models"
)

// DefaultSort lists newest bugs first.
const DefaultSort = "-createdAt"

type BugFilter struct {
	Status   models.Status
	Priority models.Priority
	Sort     string // createdAt|updatedAt|title|status|priority, "-" prefix for descending
}

// SortKey is a parsed BugFilter.Sort.
type SortKey struct {
	Field string
	Desc  bool
}

// ParseSort normalizes s, falling back to DefaultSort for unknown fields.
func ParseSort(s string) SortKey {
	s = strings.TrimSpace(s)
	k := SortKey{Field: strings.TrimPrefix(s, "-"), Desc: strings.HasPrefix(s, "-")}
	switch k.Field {
	case "createdAt", "updatedAt", "title", "status", "priority":
		return k
	default:
		return SortKey{Field: "createdAt", Desc: true}
	}
}

// Matches reports whether b passes the equality filters.
func (f BugFilter) Matches(b models.Bug) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Priority != "" && b.Priority != f.Priority {
		return false
	}
	return true
}

// Less orders two bugs by k, breaking ties on creation time then id.
func (k SortKey) Less(a, b models.Bug) bool {
	var c int
	switch k.Field {
	case "updatedAt":
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	case "title":
		c = strings.Compare(a.Title, b.Title)
	case "status":
		c = strings.Compare(string(a.Status), string(b.Status))
	case "priority":
		c = strings.Compare(string(a.Priority), string(b.Priority))
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c == 0 {
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c == 0 {
		c = strings.Compare(a.ID.Hex(), b.ID.Hex())
	}
	if k.Desc {
		return c > 0
	}
	return c < 0
}

// SortBugs sorts in place.
func SortBugs(bugs []models.Bug, k SortKey) {
	sort.SliceStable(bugs, func(i, j int) bool { return k.Less(bugs[i], bugs[j]) })
}

// CheckGroupField guards CountBy against arbitrary field names.
func CheckGroupField(field string) error {
	switch field {
	case "status", "priority":
		return nil
	default:
		return fmt.Errorf("cannot group by %q", field)
	}
}
