package member

import (
	"context"

	"github.com/google/uuid"

	domainmember "github.com/alanyang/assignit/internal/domain/member"
)

// Repository stores a board's roster. ListByBoard must return members in the
// order they were created; the allocator breaks ties on that order.
type Repository interface {
	Create(ctx context.Context, m domainmember.Member) (domainmember.Member, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domainmember.Member, error)
	// Delete returns port.ErrNotFound (wrapped) when the member is not on the board.
	Delete(ctx context.Context, boardID, memberID uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}
