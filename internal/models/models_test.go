package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFieldTriState(t *testing.T) {
	var in UpdateBugInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"abc","assignedTo":null,"tags":"oops"}`), &in))

	assert.True(t, in.Title.Present())
	assert.Equal(t, "abc", in.Title.Value)

	assert.True(t, in.AssignedTo.Set)
	assert.True(t, in.AssignedTo.Null)
	assert.False(t, in.AssignedTo.Present())

	assert.True(t, in.Tags.Set)
	assert.True(t, in.Tags.Invalid)

	assert.False(t, in.Description.Set)
	assert.False(t, in.Status.Set)
}

func TestFieldWrongScalarType(t *testing.T) {
	var in CreateBugInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":42,"tags":["a",1]}`), &in))
	assert.True(t, in.Title.Invalid)
	assert.True(t, in.Tags.Invalid)
}

func TestFormatUsesPublicID(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	b := Bug{
		ID:          id,
		Title:       "Crash on save",
		Description: "Saving a draft crashes the editor",
		Status:      StatusOpen,
		Priority:    PriorityHigh,
		Reporter:    "Jane",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	raw, err := json.Marshal(Format(b))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, id.Hex(), m["id"])
	assert.NotContains(t, m, "_id")
	assert.Equal(t, 1, strings.Count(string(raw), `"id"`))
	assert.Equal(t, []any{}, m["tags"])
}

func TestBugValidate(t *testing.T) {
	now := time.Now()
	b := Bug{
		Title:       "ok title",
		Description: "long enough description",
		Status:      StatusOpen,
		Priority:    PriorityLow,
		Reporter:    "r",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	assert.NoError(t, b.Validate())

	b.Status = "bogus"
	b.Priority = "urgent"
	err := b.Validate()
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Len(t, se.Messages, 2)
}

func TestPatchApply(t *testing.T) {
	created := time.Now()
	b := Bug{Title: "old", AssignedTo: "bob", CreatedAt: created, UpdatedAt: created}
	title := "new title"
	cleared := ""
	p := BugPatch{Title: &title, AssignedTo: &cleared}

	assert.False(t, p.Empty())
	p.Apply(&b, created.Add(time.Second))
	assert.Equal(t, "new title", b.Title)
	assert.Equal(t, "", b.AssignedTo)
	assert.True(t, b.UpdatedAt.After(b.CreatedAt))

	// a clock behind createdAt never produces updatedAt < createdAt
	p.Apply(&b, created.Add(-time.Hour))
	assert.False(t, b.UpdatedAt.Before(b.CreatedAt))
}
