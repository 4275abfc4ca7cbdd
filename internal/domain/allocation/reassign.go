package allocation

import (
	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/domain/story"
)

// TryReassign moves one story to target, or unassigns it when target is nil.
// Loads are recomputed from stories on every call. On failure the returned
// slice is nil and the inputs are untouched.
func TryReassign(stories []story.Story, members []member.Member, storyID uuid.UUID, target *uuid.UUID) ([]story.Story, error) {
	idx, ok := findStory(stories, storyID)
	if !ok {
		return nil, ErrStoryNotFound
	}

	if target != nil {
		if err := CheckCapacity(stories, members, storyID, *target); err != nil {
			return nil, err
		}
	}

	out := make([]story.Story, len(stories))
	copy(out, stories)
	out[idx] = out[idx].WithAssignee(target)
	return out, nil
}

// CheckCapacity reports whether the story could be placed on memberID without
// going over capacity. The story's own points are never counted twice.
func CheckCapacity(stories []story.Story, members []member.Member, storyID, memberID uuid.UUID) error {
	idx, ok := findStory(stories, storyID)
	if !ok {
		return ErrStoryNotFound
	}
	m, ok := findMember(members, memberID)
	if !ok {
		return ErrMemberNotFound
	}

	s := stories[idx]
	load := LoadOf(stories, m.ID, s.ID)
	if m.Fits(load, s.Points) {
		return nil
	}
	return &CapacityExceededError{
		MemberID:   m.ID,
		MemberName: m.Name,
		MaxPoints:  *m.MaxPoints,
		Load:       load,
		Points:     s.Points,
		Overflow:   m.Overflow(load, s.Points),
	}
}

// AvailableMembers returns the members with no stories assigned, in roster order.
func AvailableMembers(stories []story.Story, members []member.Member) []member.Member {
	busy := make(map[uuid.UUID]bool, len(members))
	for _, s := range stories {
		if s.AssigneeID != nil {
			busy[*s.AssigneeID] = true
		}
	}
	out := make([]member.Member, 0, len(members))
	for _, m := range members {
		if !busy[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

// Candidates is the quick-pick shortlist for a story: available members that
// would also accept it.
func Candidates(stories []story.Story, members []member.Member, storyID uuid.UUID) ([]member.Member, error) {
	if _, ok := findStory(stories, storyID); !ok {
		return nil, ErrStoryNotFound
	}
	available := AvailableMembers(stories, members)
	out := make([]member.Member, 0, len(available))
	for _, m := range available {
		if CheckCapacity(stories, members, storyID, m.ID) == nil {
			out = append(out, m)
		}
	}
	return out, nil
}
