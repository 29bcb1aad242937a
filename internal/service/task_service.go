package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"flowboard/internal/apperror"
	"flowboard/internal/model"
	"flowboard/internal/repository"

	"github.com/google/uuid"
)

// NewTask is a creation request. Empty Label and Status take their defaults.
type NewTask struct {
	Title   string
	Label   string
	DueDate *time.Time
	Status  string
	BoardID string
}

// TaskPatch is a partial update. Nil fields are left alone.
type TaskPatch struct {
	Title        *string
	Label        *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       *string
}

type TaskService struct {
	tasks  repository.TaskStore
	strict bool
}

// NewTaskService builds the task use cases. With strict set, updates and
// deletes of tasks owned by someone else report the task as missing.
func NewTaskService(tasks repository.TaskStore, strict bool) *TaskService {
	return &TaskService{tasks: tasks, strict: strict}
}

// List returns the owner's tasks, optionally narrowed to one board. A
// malformed board id matches nothing.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, rawBoardID string) ([]model.Task, error) {
	filter := repository.TaskFilter{OwnerID: ownerID}
	if rawBoardID != "" {
		boardID, err := uuid.Parse(rawBoardID)
		if err != nil {
			return []model.Task{}, nil
		}
		filter.BoardID = &boardID
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, in NewTask) (*model.Task, error) {
	task := &model.Task{
		Title:   strings.TrimSpace(in.Title),
		Label:   model.LabelWork,
		Status:  model.StatusTodo,
		DueDate: in.DueDate,
		OwnerID: ownerID,
	}
	if task.Title == "" {
		return nil, apperror.Validation("Title is required")
	}

	if in.Label != "" {
		label, err := parseLabel(in.Label)
		if err != nil {
			return nil, err
		}
		task.Label = label
	}
	if in.Status != "" {
		status, err := parseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if in.BoardID != "" {
		boardID, err := uuid.Parse(in.BoardID)
		if err != nil {
			return nil, apperror.Validation("Invalid boardId")
		}
		task.BoardID = &boardID
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperror.Internal(err)
	}
	return task, nil
}

// Update writes only the fields present in patch, leaving concurrent edits to
// other fields intact.
func (s *TaskService) Update(ctx context.Context, ownerID uuid.UUID, rawID string, patch TaskPatch) (*model.Task, error) {
	var fields repository.TaskUpdate
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.Validation("Title is required")
		}
		fields.Title = &title
	}
	if patch.Label != nil {
		label, err := parseLabel(*patch.Label)
		if err != nil {
			return nil, err
		}
		fields.Label = &label
	}
	if patch.Status != nil {
		status, err := parseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		fields.Status = &status
	}
	fields.DueDate = patch.DueDate
	fields.ClearDueDate = patch.DueDate == nil && patch.ClearDueDate

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperror.NotFound("Task not found")
	}
	if s.strict {
		if _, err := s.load(ctx, ownerID, rawID); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.NotFound("Task not found")
		}
		return nil, apperror.Internal(err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID uuid.UUID, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apperror.NotFound("Task not found")
	}

	if s.strict {
		if _, err := s.load(ctx, ownerID, rawID); err != nil {
			return err
		}
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperror.NotFound("Task not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// load fetches a task by raw id, applying the ownership check when strict.
func (s *TaskService) load(ctx context.Context, ownerID uuid.UUID, rawID string) (*model.Task, error) {
	notFound := apperror.NotFound("Task not found")

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, notFound
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, notFound
		}
		return nil, apperror.Internal(err)
	}
	if s.strict && task.OwnerID != ownerID {
		return nil, notFound
	}
	return task, nil
}

func parseLabel(raw string) (model.Label, error) {
	label := model.Label(strings.TrimSpace(raw))
	if !label.Valid() {
		return "", apperror.Validation("Invalid label")
	}
	return label, nil
}

func parseStatus(raw string) (model.Status, error) {
	status := model.Status(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", apperror.Validation("Invalid status")
	}
	return status, nil
}
