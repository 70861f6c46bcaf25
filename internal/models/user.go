package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account row plus the attributes the meal planner reads.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	LoginID      string         `gorm:"size:64;uniqueIndex;not null" json:"login_id"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"size:64;not null" json:"name"`

	Gender        string  `gorm:"size:16" json:"gender"`
	Age           int     `json:"age"`
	HeightCM      int     `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `gorm:"size:64" json:"activity_level"`
	DietGoal      string  `gorm:"size:128" json:"diet_goal"`
	PreferredFood string  `gorm:"size:255" json:"preferred_food"`

	Allergies []Allergy `gorm:"many2many:user_allergies" json:"allergies"`
	EatLevel  *EatLevel `json:"eat_level,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Allergy is a shared allergy catalog entry.
type Allergy struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

func (a *Allergy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// EatLevel stores how heavily a user eats at each meal.
type EatLevel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Breakfast string    `gorm:"size:32" json:"breakfast"`
	Lunch     string    `gorm:"size:32" json:"lunch"`
	Dinner    string    `gorm:"size:32" json:"dinner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *EatLevel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
