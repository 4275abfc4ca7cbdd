package allocation

import (
	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/domain/story"
)

// Loads sums assigned points per member. Every member gets an entry; assignees
// that are not in members are ignored.
func Loads(stories []story.Story, members []member.Member) map[uuid.UUID]int {
	loads := make(map[uuid.UUID]int, len(members))
	for _, m := range members {
		loads[m.ID] = 0
	}
	for _, s := range stories {
		if s.AssigneeID == nil {
			continue
		}
		if _, ok := loads[*s.AssigneeID]; ok {
			loads[*s.AssigneeID] += s.Points
		}
	}
	return loads
}

// LoadOf sums the points assigned to memberID, skipping the story with id exclude.
func LoadOf(stories []story.Story, memberID, exclude uuid.UUID) int {
	load := 0
	for _, s := range stories {
		if s.ID == exclude {
			continue
		}
		if s.IsAssignedTo(memberID) {
			load += s.Points
		}
	}
	return load
}

func findStory(stories []story.Story, id uuid.UUID) (int, bool) {
	for i, s := range stories {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

func findMember(members []member.Member, id uuid.UUID) (member.Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return member.Member{}, false
}
