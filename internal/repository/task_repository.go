package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// List retrieves the owner's tasks, optionally for one board, oldest first
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	tasks := []model.Task{}
	query := r.db.WithContext(ctx).Where("owner_id = ?", filter.OwnerID)
	if filter.BoardID != nil {
		query = query.Where("board_id = ?", *filter.BoardID)
	}
	if err := query.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Update writes only the supplied columns and returns the stored row
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) (*model.Task, error) {
	columns := map[string]any{"updated_at": time.Now()}
	if upd.Title != nil {
		columns["title"] = *upd.Title
	}
	if upd.Label != nil {
		columns["label"] = string(*upd.Label)
	}
	if upd.Status != nil {
		columns["status"] = string(*upd.Status)
	}
	switch {
	case upd.DueDate != nil:
		columns["due_date"] = *upd.DueDate
	case upd.ClearDueDate:
		columns["due_date"] = nil
	}

	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Task{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return tx.First(&task, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
