package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists every accepted status in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMinLen = 10
)

// Bug is the stored representation of a bug report. The storage identifier
// never leaves the process under its storage name; see Format.
type Bug struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      Status             `bson:"status"`
	Priority    Priority           `bson:"priority"`
	Reporter    string             `bson:"reporter"`
	AssignedTo  string             `bson:"assignedTo,omitempty"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// BugPatch is a sparse update. A nil pointer leaves the stored value alone;
// AssignedTo pointing at "" clears the assignee.
type BugPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	AssignedTo  *string
	Tags        *[]string
}

// Empty reports whether the patch changes nothing.
func (p BugPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.Tags == nil
}

// Apply copies the present fields onto b and bumps UpdatedAt.
func (p BugPatch) Apply(b *Bug, now time.Time) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Priority != nil {
		b.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		b.AssignedTo = *p.AssignedTo
	}
	if p.Tags != nil {
		b.Tags = append([]string{}, (*p.Tags)...)
	}
	if now.Before(b.CreatedAt) {
		now = b.CreatedAt
	}
	b.UpdatedAt = now
}

// GroupCount is one bucket of a count-by-field aggregation.
type GroupCount struct {
	Value string `json:"value" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}
