package repository

import (
	"context"
	"time"

	"flowboard/internal/model"

	"github.com/google/uuid"
)

// UserStore persists accounts. Username and email are unique.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error)
}

// UserUpdate names the profile fields to overwrite. Nil fields are not written.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// BoardStore persists boards. (OwnerID, Name) is unique.
type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskFilter narrows a task listing. OwnerID is always applied.
type TaskFilter struct {
	OwnerID uuid.UUID
	BoardID *uuid.UUID
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskUpdate names the task fields to overwrite. Nil fields are not written;
// ClearDueDate removes the due date when DueDate is nil.
type TaskUpdate struct {
	Title        *string
	Label        *model.Label
	Status       *model.Status
	DueDate      *time.Time
	ClearDueDate bool
}

// Stores bundles one backend's implementations.
type Stores struct {
	Users  UserStore
	Boards BoardStore
	Tasks  TaskStore
}

var (
	_ UserStore  = (*UserRepository)(nil)
	_ BoardStore = (*BoardRepository)(nil)
	_ TaskStore  = (*TaskRepository)(nil)
)
