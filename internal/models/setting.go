package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Setting holds the single persisted key-value pair per user: the theme
// preference, read at startup by clients and written on change.
type Setting struct {
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;primaryKey"`
	Theme     string    `json:"theme" gorm:"not null;default:'system'"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidTheme(t string) bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type SaveThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}
