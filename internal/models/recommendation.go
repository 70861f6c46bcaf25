package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyRecommendation is one persisted plan generation: the plan-wide totals
// plus the child rows mapped from the finalized plan. Rows are append-only;
// history queries order by CreatedAt.
type DailyRecommendation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	TotalCalories int     `json:"total_calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbG         float64 `json:"carb_g"`
	FatG          float64 `json:"fat_g"`
	ProteinPct    int     `json:"protein_pct"`
	CarbPct       int     `json:"carb_pct"`
	FatPct        int     `json:"fat_pct"`
	GoalNote      string  `gorm:"size:255" json:"goal_note"`

	MealKits []MealKit     `gorm:"constraint:OnDelete:CASCADE" json:"meal_kits"`
	Recipe   *RecipeRecord `gorm:"constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (d *DailyRecommendation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// MealKit is one recommended food item within a persisted plan, keyed by the
// meal slot it belongs to.
type MealKit struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DailyRecommendationID uuid.UUID `gorm:"type:uuid;not null;index" json:"daily_recommendation_id"`
	MealType              string    `gorm:"size:16;not null" json:"meal_type"`
	Name                  string    `gorm:"size:128;not null" json:"name"`
	Calories              int       `json:"calories"`
	ProteinG              float64   `json:"protein_g"`
	CarbG                 float64   `json:"carb_g"`
	FatG                  float64   `json:"fat_g"`
	PrepTimeMin           int       `json:"prep_time_min"`
	PurchaseLink          string    `gorm:"size:512" json:"purchase_link"`
	ImageURL              string    `gorm:"size:512" json:"image_url"`
	CreatedAt             time.Time `json:"created_at"`
}

func (m *MealKit) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecipeRecord is the recipe attached to a persisted plan, with its
// ingredient rows.
type RecipeRecord struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DailyRecommendationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"daily_recommendation_id"`
	Name                  string    `gorm:"size:128;not null" json:"name"`
	CreatedAt             time.Time `json:"created_at"`

	Ingredients []IngredientRecord `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *RecipeRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientRecord is one ingredient row of a persisted recipe.
type IngredientRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_record_id"`
	Name           string    `gorm:"size:128;not null" json:"name"`
	Amount         string    `gorm:"size:64" json:"amount"`
	PurchaseLink   string    `gorm:"size:512" json:"purchase_link"`
}

func (i *IngredientRecord) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
