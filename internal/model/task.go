package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Label     Label     `gorm:"not null"`
	DueDate   *time.Time
	Status    Status     `gorm:"not null"`
	BoardID   *uuid.UUID `gorm:"type:uuid;index:idx_tasks_owner_board,priority:2"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_owner_board,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Label == "" {
		t.Label = LabelWork
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	return nil
}
