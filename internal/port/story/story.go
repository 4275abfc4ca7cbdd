package story

import (
	"context"

	"github.com/google/uuid"

	domainstory "github.com/alanyang/assignit/internal/domain/story"
)

// Repository stores a board's stories. ListByBoard must return stories in
// ingestion order.
type Repository interface {
	// ReplaceAll atomically swaps the board's stories for the given list.
	ReplaceAll(ctx context.Context, boardID uuid.UUID, stories []domainstory.Story) error
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domainstory.Story, error)

	// SetAssignee returns port.ErrNotFound (wrapped) when the story is not on the board.
	SetAssignee(ctx context.Context, boardID, storyID uuid.UUID, memberID *uuid.UUID) error
	// ApplyAssignments writes the assignee of every given story in one transaction.
	ApplyAssignments(ctx context.Context, boardID uuid.UUID, stories []domainstory.Story) error
	// UnassignByMember clears every story held by the member.
	UnassignByMember(ctx context.Context, boardID, memberID uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}
