package repository_test

import (
	"context"
	"testing"

	"flowboard/internal/model"
	"flowboard/internal/repository"
	"flowboard/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_NameUniquePerOwner(t *testing.T) {
	repo := testutil.Stores(t).Boards
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, &model.Board{Name: "Sprint1", OwnerID: alice}))

	err := repo.Create(ctx, &model.Board{Name: "Sprint1", OwnerID: alice})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.NoError(t, repo.Create(ctx, &model.Board{Name: "Sprint1", OwnerID: bob}))
}

func TestBoardRepository_GetOwned(t *testing.T) {
	repo := testutil.Stores(t).Boards
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, &model.Board{Name: "A", OwnerID: alice}))
	require.NoError(t, repo.Create(ctx, &model.Board{Name: "B", OwnerID: alice}))
	require.NoError(t, repo.Create(ctx, &model.Board{Name: "C", OwnerID: bob}))

	boards, err := repo.GetOwned(ctx, alice)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	for _, b := range boards {
		assert.Equal(t, alice, b.OwnerID)
	}

	none, err := repo.GetOwned(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBoardRepository_Delete(t *testing.T) {
	stores := testutil.Stores(t)
	ctx := context.Background()
	owner := uuid.New()

	board := &model.Board{Name: "Sprint1", OwnerID: owner}
	require.NoError(t, stores.Boards.Create(ctx, board))
	task := &model.Task{Title: "Write report", OwnerID: owner, BoardID: &board.ID}
	require.NoError(t, stores.Tasks.Create(ctx, task))

	require.NoError(t, stores.Boards.Delete(ctx, board.ID))
	assert.ErrorIs(t, stores.Boards.Delete(ctx, board.ID), repository.ErrBoardNotFound)

	_, err := stores.Boards.GetByID(ctx, board.ID)
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)

	// Tasks are not cascaded.
	kept, err := stores.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.BoardID)
	assert.Equal(t, board.ID, *kept.BoardID)
}
