package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainboard "github.com/alanyang/assignit/internal/domain/board"
	"github.com/alanyang/assignit/internal/port"
	portboard "github.com/alanyang/assignit/internal/port/board"
)

var _ portboard.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, b domainboard.Board) (domainboard.Board, error) {
	query := `
		INSERT INTO boards (id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_at`

	var created domainboard.Board
	err := r.pool.QueryRow(ctx, query, b.ID, b.Name, b.CreatedAt).
		Scan(&created.ID, &created.Name, &created.CreatedAt)
	if err != nil {
		return domainboard.Board{}, fmt.Errorf("inserting board: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domainboard.Board, error) {
	query := `SELECT id, name, created_at FROM boards WHERE id = $1`

	var b domainboard.Board
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainboard.Board{}, fmt.Errorf("board %s: %w", id, port.ErrNotFound)
		}
		return domainboard.Board{}, fmt.Errorf("querying board: %w", err)
	}
	return b, nil
}
