package models

import (
	"strings"
	"unicode/utf8"
)

// SchemaError is returned by storage backends when a record breaks the
// stored shape, regardless of what the request layer already checked.
type SchemaError struct {
	Messages []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Messages, ", ")
}

// Validate checks a full record before insert.
func (b *Bug) Validate() error {
	var msgs []string
	msgs = checkTitle(msgs, b.Title)
	msgs = checkDescription(msgs, b.Description)
	if strings.TrimSpace(b.Reporter) == "" {
		msgs = append(msgs, "reporter is required")
	}
	msgs = checkEnums(msgs, &b.Status, &b.Priority)
	if b.UpdatedAt.Before(b.CreatedAt) {
		msgs = append(msgs, "updatedAt precedes createdAt")
	}
	return schemaErr(msgs)
}

// Validate checks only the fields the patch sets.
func (p BugPatch) Validate() error {
	var msgs []string
	if p.Title != nil {
		msgs = checkTitle(msgs, *p.Title)
	}
	if p.Description != nil {
		msgs = checkDescription(msgs, *p.Description)
	}
	msgs = checkEnums(msgs, p.Status, p.Priority)
	return schemaErr(msgs)
}

func checkTitle(msgs []string, title string) []string {
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n < TitleMinLen || n > TitleMaxLen {
		msgs = append(msgs, "title must be between 3 and 200 characters")
	}
	return msgs
}

func checkDescription(msgs []string, desc string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(desc)) < DescriptionMinLen {
		msgs = append(msgs, "description must be at least 10 characters")
	}
	return msgs
}

func checkEnums(msgs []string, s *Status, p *Priority) []string {
	if s != nil && !s.Valid() {
		msgs = append(msgs, "`"+string(*s)+"` is not a valid status")
	}
	if p != nil && !p.Valid() {
		msgs = append(msgs, "`"+string(*p)+"` is not a valid priority")
	}
	return msgs
}

func schemaErr(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &SchemaError{Messages: msgs}
}
