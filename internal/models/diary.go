package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EatenFood is one food-diary entry, usually created by an image upload.
type EatenFood struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:128" json:"name"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	EatenAt   time.Time `json:"eaten_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *EatenFood) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
