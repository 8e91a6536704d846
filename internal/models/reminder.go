package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderPref is a write-only settings record: appended on every save,
// never read back by any derive logic.
type ReminderPref struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Enabled   bool      `json:"enabled"`
	Frequency string    `json:"frequency"` // daily, weekly
	Time      string    `json:"time"`      // time of day, HH:MM
	Channel   string    `json:"channel"`   // email, push
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *ReminderPref) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type SaveReminderRequest struct {
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"`
	Time      string `json:"time"`
	Channel   string `json:"channel"`
}
