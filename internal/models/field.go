package models

import (
	"bytes"
	"encoding/json"
)

// Field is an optional request field that remembers whether the client sent
// it, sent null, or sent a value of the wrong JSON type.
//
// encoding/json only calls UnmarshalJSON when the key is present, so the
// zero value means "absent".
type Field[T any] struct {
	Value   T
	Set     bool // key present in the payload
	Null    bool // key present with a null value
	Invalid bool // key present but not decodable as T
}

// Some returns a Field carrying v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		f.Invalid = true
	}
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null || f.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports a usable value: sent, non-null, right type.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null && !f.Invalid
}

// CreateBugInput is the POST /bugs body.
type CreateBugInput struct {
	Title       Field[string]   `json:"title"`
	Description Field[string]   `json:"description"`
	Status      Field[string]   `json:"status"`
	Priority    Field[string]   `json:"priority"`
	Reporter    Field[string]   `json:"reporter"`
	AssignedTo  Field[string]   `json:"assignedTo"`
	Tags        Field[[]string] `json:"tags"`
}

// UpdateBugInput is the PUT /bugs/{id} body. Every field is optional.
type UpdateBugInput struct {
	Title       Field[string]   `json:"title"`
	Description Field[string]   `json:"description"`
	Status      Field[string]   `json:"status"`
	Priority    Field[string]   `json:"priority"`
	Reporter    Field[string]   `json:"reporter"`
	AssignedTo  Field[string]   `json:"assignedTo"`
	Tags        Field[[]string] `json:"tags"`
}
