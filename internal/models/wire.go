package models

import "time"

// BugResponse is the public JSON shape of a Bug.
type BugResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Reporter    string    `json:"reporter"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Format maps a stored bug to its wire shape.
func Format(b Bug) BugResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BugResponse{
		ID:          b.ID.Hex(),
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Priority:    b.Priority,
		Reporter:    b.Reporter,
		AssignedTo:  b.AssignedTo,
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FormatAll(bugs []Bug) []BugResponse {
	out := make([]BugResponse, 0, len(bugs))
	for _, b := range bugs {
		out = append(out, Format(b))
	}
	return out
}

// Stats is the GET /bugs/stats payload.
type Stats struct {
	ByStatus   []GroupCount `json:"byStatus"`
	ByPriority []GroupCount `json:"byPriority"`
}
