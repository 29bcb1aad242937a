package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board names are unique per owner, not globally.
type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex:idx_boards_owner_name,priority:2"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_boards_owner_name,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
