package service

import (
	"context"
	"errors"
	"strings"

	"flowboard/internal/apperror"
	"flowboard/internal/model"
	"flowboard/internal/repository"

	"github.com/google/uuid"
)

type BoardService struct {
	boards repository.BoardStore
	strict bool
}

// NewBoardService builds the board use cases. With strict set, deleting
// someone else's board reports it as missing instead of deleting it.
func NewBoardService(boards repository.BoardStore, strict bool) *BoardService {
	return &BoardService{boards: boards, strict: strict}
}

func (s *BoardService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetOwned(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return boards, nil
}

func (s *BoardService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("Name is required")
	}

	board := &model.Board{Name: name, OwnerID: ownerID}
	if err := s.boards.Create(ctx, board); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("Board already exists")
		}
		return nil, apperror.Internal(err)
	}
	return board, nil
}

// Delete takes the raw path id; a malformed id is simply a board that does not exist.
func (s *BoardService) Delete(ctx context.Context, ownerID uuid.UUID, rawID string) error {
	notFound := apperror.NotFound("Board not found")

	id, err := uuid.Parse(rawID)
	if err != nil {
		return notFound
	}

	if s.strict {
		board, err := s.boards.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrBoardNotFound) {
				return notFound
			}
			return apperror.Internal(err)
		}
		if board.OwnerID != ownerID {
			return notFound
		}
	}

	if err := s.boards.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return notFound
		}
		return apperror.Internal(err)
	}
	return nil
}
