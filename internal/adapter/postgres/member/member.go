package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainmember "github.com/alanyang/assignit/internal/domain/member"
	"github.com/alanyang/assignit/internal/port"
	portmember "github.com/alanyang/assignit/internal/port/member"
)

var _ portmember.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, m domainmember.Member) (domainmember.Member, error) {
	query := `
		INSERT INTO members (id, board_id, name, max_points, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, board_id, name, max_points, created_at`

	var created domainmember.Member
	err := r.pool.QueryRow(ctx, query, m.ID, m.BoardID, m.Name, m.MaxPoints, m.CreatedAt).
		Scan(&created.ID, &created.BoardID, &created.Name, &created.MaxPoints, &created.CreatedAt)
	if err != nil {
		return domainmember.Member{}, fmt.Errorf("inserting member: %w", err)
	}
	return created, nil
}

// ListByBoard returns the roster in insertion order.
func (r *Repository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domainmember.Member, error) {
	query := `
		SELECT id, board_id, name, max_points, created_at
		FROM members WHERE board_id = $1
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domainmember.Member, error) {
		var m domainmember.Member
		err := row.Scan(&m.ID, &m.BoardID, &m.Name, &m.MaxPoints, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning members: %w", err)
	}
	return members, nil
}

func (r *Repository) Delete(ctx context.Context, boardID, memberID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE board_id = $1 AND id = $2`, boardID, memberID)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s: %w", memberID, port.ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM members WHERE board_id = $1`, boardID); err != nil {
		return fmt.Errorf("deleting board members: %w", err)
	}
	return nil
}
