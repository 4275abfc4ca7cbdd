package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portidem "github.com/alanyang/assignit/internal/port/idempotency"
)

var _ portidem.Store = (*Repository)(nil)

// Repository keeps processed responses in processed_operations. Rows older
// than ttl are ignored by Check and removed by Purge.
type Repository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func New(pool *pgxpool.Pool, ttl time.Duration) *Repository {
	return &Repository{pool: pool, ttl: ttl}
}

func (r *Repository) Check(ctx context.Context, key string) (portidem.Response, bool, error) {
	query := `
		SELECT status, body FROM processed_operations
		WHERE idempotency_key = $1 AND created_at > $2`

	var resp portidem.Response
	err := r.pool.QueryRow(ctx, query, key, time.Now().Add(-r.ttl)).Scan(&resp.Status, &resp.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return portidem.Response{}, false, nil
		}
		return portidem.Response{}, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	return resp, true, nil
}

// Save stores resp under key. A live row for the key is kept; an expired one
// that the janitor has not purged yet is overwritten.
func (r *Repository) Save(ctx context.Context, key, operation string, resp portidem.Response) error {
	query := `
		INSERT INTO processed_operations (idempotency_key, operation_type, status, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (idempotency_key) DO UPDATE
		SET operation_type = EXCLUDED.operation_type,
		    status         = EXCLUDED.status,
		    body           = EXCLUDED.body,
		    created_at     = NOW()
		WHERE processed_operations.created_at <= $5`

	cutoff := time.Now().Add(-r.ttl)
	if _, err := r.pool.Exec(ctx, query, key, operation, resp.Status, resp.Body, cutoff); err != nil {
		return fmt.Errorf("storing idempotency key: %w", err)
	}
	return nil
}

// Purge deletes expired rows and reports how many were removed.
func (r *Repository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM processed_operations WHERE created_at <= $1`, time.Now().Add(-r.ttl))
	if err != nil {
		return 0, fmt.Errorf("purging idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
