package board

import (
	"context"

	"github.com/google/uuid"

	domainboard "github.com/alanyang/assignit/internal/domain/board"
)

type Repository interface {
	Create(ctx context.Context, b domainboard.Board) (domainboard.Board, error)
	// GetByID returns port.ErrNotFound (wrapped) when no board has the id.
	GetByID(ctx context.Context, id uuid.UUID) (domainboard.Board, error)
}
