package story

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainstory "github.com/alanyang/assignit/internal/domain/story"
	"github.com/alanyang/assignit/internal/port"
	portstory "github.com/alanyang/assignit/internal/port/story"
)

var _ portstory.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReplaceAll deletes the board's stories and inserts the new list in one
// transaction. Insertion order becomes the list order.
func (r *Repository) ReplaceAll(ctx context.Context, boardID uuid.UUID, stories []domainstory.Story) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM stories WHERE board_id = $1`, boardID); err != nil {
			return fmt.Errorf("clearing stories: %w", err)
		}

		batch := &pgx.Batch{}
		for _, s := range stories {
			batch.Queue(`
				INSERT INTO stories (id, board_id, title, points, assignee_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				s.ID, boardID, s.Title, s.Points, s.AssigneeID, s.CreatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting stories: %w", err)
		}
		return nil
	})
}

// ListByBoard returns the stories in ingestion order.
func (r *Repository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domainstory.Story, error) {
	query := `
		SELECT id, board_id, title, points, assignee_id, created_at
		FROM stories WHERE board_id = $1
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying stories: %w", err)
	}

	stories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domainstory.Story, error) {
		var s domainstory.Story
		err := row.Scan(&s.ID, &s.BoardID, &s.Title, &s.Points, &s.AssigneeID, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning stories: %w", err)
	}
	return stories, nil
}

func (r *Repository) SetAssignee(ctx context.Context, boardID, storyID uuid.UUID, memberID *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stories SET assignee_id = $3 WHERE board_id = $1 AND id = $2`,
		boardID, storyID, memberID)
	if err != nil {
		return fmt.Errorf("updating story assignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", storyID, port.ErrNotFound)
	}
	return nil
}

// ApplyAssignments writes every assignee in a single transaction so a bulk
// allocation is never half-applied.
func (r *Repository) ApplyAssignments(ctx context.Context, boardID uuid.UUID, stories []domainstory.Story) error {
	if len(stories) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, s := range stories {
			batch.Queue(`UPDATE stories SET assignee_id = $3 WHERE board_id = $1 AND id = $2`,
				boardID, s.ID, s.AssigneeID)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("applying assignments: %w", err)
		}
		return nil
	})
}

func (r *Repository) UnassignByMember(ctx context.Context, boardID, memberID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE stories SET assignee_id = NULL WHERE board_id = $1 AND assignee_id = $2`,
		boardID, memberID)
	if err != nil {
		return fmt.Errorf("unassigning member stories: %w", err)
	}
	return nil
}

func (r *Repository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE board_id = $1`, boardID); err != nil {
		return fmt.Errorf("deleting board stories: %w", err)
	}
	return nil
}
