package allocation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrStoryNotFound    = errors.New("story not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// CapacityExceededError rejects a move that would push a member over its limit.
type CapacityExceededError struct {
	MemberID   uuid.UUID
	MemberName string
	MaxPoints  int
	Load       int // points already held, excluding the story being moved
	Points     int
	Overflow   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s has a capacity of %d points and would exceed it by %d points",
		ErrCapacityExceeded, e.MemberName, e.MaxPoints, e.Overflow)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
