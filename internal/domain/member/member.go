package member

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Name      string    `json:"name"`
	MaxPoints *int      `json:"max_points,omitempty"` // nil means unlimited
	CreatedAt time.Time `json:"created_at"`
}

func New(id, boardID uuid.UUID, name string, maxPoints *int) Member {
	m := Member{
		ID:        id,
		BoardID:   boardID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if maxPoints != nil {
		v := *maxPoints
		m.MaxPoints = &v
	}
	return m
}

// Valid reports whether the member has a name and, if limited, a positive capacity.
func (m Member) Valid() bool {
	if m.Name == "" {
		return false
	}
	return m.MaxPoints == nil || *m.MaxPoints > 0
}

// HasLimit reports whether the member declares a finite capacity.
// A non-positive stored value is treated as no limit.
func (m Member) HasLimit() bool {
	return m.MaxPoints != nil && *m.MaxPoints > 0
}

// Fits reports whether adding points on top of load stays within capacity.
func (m Member) Fits(load, points int) bool {
	return !m.HasLimit() || load+points <= *m.MaxPoints
}

// Overflow is how far load+points would exceed capacity; zero when it fits.
func (m Member) Overflow(load, points int) int {
	if m.Fits(load, points) {
		return 0
	}
	return load + points - *m.MaxPoints
}
