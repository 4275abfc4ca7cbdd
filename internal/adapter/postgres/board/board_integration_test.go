//go:build integration

package board_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgboard "github.com/alanyang/assignit/internal/adapter/postgres/board"
	domainboard "github.com/alanyang/assignit/internal/domain/board"
	"github.com/alanyang/assignit/internal/port"
	"github.com/alanyang/assignit/internal/testutil"
)

func TestBoardRepo_CreateGet(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgboard.New(pool)

	created, err := repo.Create(ctx, domainboard.New(uuid.New(), "sprint 12"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sprint 12", got.Name)
}

func TestBoardRepo_GetUnknown(t *testing.T) {
	pool := testutil.SetupTestDB(t)

	_, err := pgboard.New(pool).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, port.ErrNotFound)
}
