package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/domain/story"
)

// Board groups one roster and one story list. It is the unit of locking and snapshotting.
type Board struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func New(id uuid.UUID, name string) Board {
	return Board{
		ID:        id,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Snapshot is the full state of a board at one point in time.
// Members are in roster order and stories in ingestion order; the allocator's
// tie-breaks depend on both.
type Snapshot struct {
	Board   Board           `json:"board"`
	Members []member.Member `json:"members"`
	Stories []story.Story   `json:"stories"`
}
