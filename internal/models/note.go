package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is free-text, independent of goals and tasks.
type Note struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	Text      string         `json:"text" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Note DTOs
type SaveNoteRequest struct {
	Text string `json:"text" validate:"required"`
}
