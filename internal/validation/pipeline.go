package validation

import (
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bug-tracker/internal/models"
)

// Error collects every violation found in one request.
type Error struct {
	Messages []string
}

func (e *Error) Error() string { return strings.Join(e.Messages, ", ") }

// NewError returns nil when msgs is empty.
func NewError(msgs ...string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &Error{Messages: msgs}
}

type checker struct{ msgs []string }

func (c *checker) add(msg string) { c.msgs = append(c.msgs, msg) }

func (c *checker) err() error { return NewError(c.msgs...) }

// ValidateCreate checks a POST /bugs payload. Nothing is rewritten.
func ValidateCreate(in models.CreateBugInput) error {
	var c checker

	c.requiredText("Title", in.Title)
	if in.Title.Present() && strings.TrimSpace(in.Title.Value) != "" {
		c.titleLength(in.Title.Value)
	}

	c.requiredText("Description", in.Description)
	if in.Description.Present() && strings.TrimSpace(in.Description.Value) != "" {
		c.descriptionLength(in.Description.Value)
	}

	c.requiredText("Reporter", in.Reporter)

	// status is client-settable on create too, under the same rule as update
	if in.Status.Set {
		c.status(in.Status)
	}
	if in.Priority.Set {
		c.priority(in.Priority)
	}
	if in.AssignedTo.Invalid {
		c.add("AssignedTo must be a string")
	}
	if in.Tags.Invalid {
		c.add("Tags must be an array")
	}
	return c.err()
}

// ValidateUpdate checks a PUT /bugs/{id} payload. Every field is optional.
func ValidateUpdate(in models.UpdateBugInput) error {
	var c checker

	if in.Title.Set {
		if c.nonEmptyText("Title", in.Title) {
			c.titleLength(in.Title.Value)
		}
	}
	if in.Description.Set {
		if c.nonEmptyText("Description", in.Description) {
			c.descriptionLength(in.Description.Value)
		}
	}
	if in.Status.Set {
		c.status(in.Status)
	}
	if in.Priority.Set {
		c.priority(in.Priority)
	}
	if in.Reporter.Set {
		c.add("Reporter cannot be changed")
	}
	if in.AssignedTo.Invalid {
		c.add("AssignedTo must be a string")
	}
	if in.Tags.Invalid {
		c.add("Tags must be an array")
	}
	return c.err()
}

// ValidateID rejects anything that is not a 24 hex character object id.
func ValidateID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return NewError("Invalid bug ID")
	}
	return nil
}

// ValidateListFilter checks the optional list query filters.
func ValidateListFilter(status, priority string) error {
	var c checker
	if status != "" && !IsValidStatus(status) {
		c.add("Invalid status filter")
	}
	if priority != "" && !IsValidPriority(priority) {
		c.add("Invalid priority filter")
	}
	return c.err()
}

func (c *checker) requiredText(name string, f models.Field[string]) {
	switch {
	case f.Invalid:
		c.add(name + " must be a string")
	case !f.Present() || strings.TrimSpace(f.Value) == "":
		c.add(name + " is required")
	}
}

func (c *checker) nonEmptyText(name string, f models.Field[string]) bool {
	switch {
	case f.Invalid:
		c.add(name + " must be a string")
	case f.Null || strings.TrimSpace(f.Value) == "":
		c.add(name + " cannot be empty")
	default:
		return true
	}
	return false
}

func (c *checker) titleLength(s string) {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n < models.TitleMinLen || n > models.TitleMaxLen {
		c.add("Title must be between 3 and 200 characters")
	}
}

func (c *checker) descriptionLength(s string) {
	if !MeetsMinLength(s, models.DescriptionMinLen) {
		c.add("Description must be at least 10 characters")
	}
}

func (c *checker) status(f models.Field[string]) {
	if !f.Present() || !IsValidStatus(f.Value) {
		c.add("Invalid status value")
	}
}

func (c *checker) priority(f models.Field[string]) {
	if !f.Present() || !IsValidPriority(f.Value) {
		c.add("Invalid priority value")
	}
}
