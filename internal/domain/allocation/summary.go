package allocation

import (
	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/domain/story"
)

type MemberLoad struct {
	MemberID     uuid.UUID `json:"member_id"`
	Name         string    `json:"name"`
	Points       int       `json:"points"`
	MaxPoints    *int      `json:"max_points,omitempty"`
	Stories      int       `json:"stories"`
	OverCapacity bool      `json:"over_capacity"`
}

type Summary struct {
	AssignedPoints    int          `json:"assigned_points"`
	UnassignedPoints  int          `json:"unassigned_points"`
	AveragePoints     float64      `json:"average_points"` // assigned points per roster member
	UnassignedStories []uuid.UUID  `json:"unassigned_stories"`
	Members           []MemberLoad `json:"members"`
}

// Summarize reports per-member load in roster order plus the unassigned backlog.
// A story pointing at a member that no longer exists counts as unassigned.
func Summarize(stories []story.Story, members []member.Member) Summary {
	rows := make([]MemberLoad, len(members))
	pos := make(map[uuid.UUID]int, len(members))
	for i, m := range members {
		rows[i] = MemberLoad{MemberID: m.ID, Name: m.Name, MaxPoints: m.MaxPoints}
		pos[m.ID] = i
	}

	sum := Summary{UnassignedStories: []uuid.UUID{}}
	for _, s := range stories {
		i, ok := -1, false
		if s.AssigneeID != nil {
			i, ok = pos[*s.AssigneeID]
		}
		if !ok {
			sum.UnassignedPoints += s.Points
			sum.UnassignedStories = append(sum.UnassignedStories, s.ID)
			continue
		}
		sum.AssignedPoints += s.Points
		rows[i].Points += s.Points
		rows[i].Stories++
	}
	for i, m := range members {
		rows[i].OverCapacity = m.HasLimit() && rows[i].Points > *m.MaxPoints
	}
	if len(members) > 0 {
		sum.AveragePoints = float64(sum.AssignedPoints) / float64(len(members))
	}
	sum.Members = rows
	return sum
}
