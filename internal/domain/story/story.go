package story

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Draft is a (title, points) pair handed over by ingestion before it gets an identity.
type Draft struct {
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// Valid reports whether the draft has a non-empty title and positive points.
func (d Draft) Valid() bool {
	return strings.TrimSpace(d.Title) != "" && d.Points > 0
}

type Story struct {
	ID         uuid.UUID  `json:"id"`
	BoardID    uuid.UUID  `json:"board_id"`
	Title      string     `json:"title"`
	Points     int        `json:"points"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// New creates an unassigned story. The id is supplied by the caller so
// construction stays deterministic under test.
func New(id, boardID uuid.UUID, d Draft) Story {
	return Story{
		ID:        id,
		BoardID:   boardID,
		Title:     strings.TrimSpace(d.Title),
		Points:    d.Points,
		CreatedAt: time.Now().UTC(),
	}
}

func (s Story) IsAssigned() bool { return s.AssigneeID != nil }

func (s Story) IsAssignedTo(memberID uuid.UUID) bool {
	return s.AssigneeID != nil && *s.AssigneeID == memberID
}

// WithAssignee returns a copy of s pointing at memberID, or unassigned when nil.
// The pointer is never shared with the input.
func (s Story) WithAssignee(memberID *uuid.UUID) Story {
	if memberID == nil {
		s.AssigneeID = nil
		return s
	}
	id := *memberID
	s.AssigneeID = &id
	return s
}
