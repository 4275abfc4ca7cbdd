package allocation

import (
	"cmp"
	"slices"

	"github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/domain/story"
)

// Allocate assigns every story to a member in one pass and returns the result
// in input order. Existing assignments are discarded. A story that fits no
// member comes back unassigned; that is an outcome, not an error.
//
// With no members the stories are returned unchanged.
func Allocate(stories []story.Story, members []member.Member) []story.Story {
	out := make([]story.Story, len(stories))
	for i, s := range stories {
		out[i] = s.WithAssignee(s.AssigneeID)
	}
	if len(members) == 0 {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(out[b].Points, out[a].Points)
	})

	loads := make([]int, len(members))
	for _, idx := range order {
		pick := -1
		for j, m := range members {
			if !m.Fits(loads[j], out[idx].Points) {
				continue
			}
			if pick < 0 || loads[j] < loads[pick] {
				pick = j
			}
		}
		if pick < 0 {
			out[idx] = out[idx].WithAssignee(nil)
			continue
		}
		loads[pick] += out[idx].Points
		out[idx] = out[idx].WithAssignee(&members[pick].ID)
	}
	return out
}
