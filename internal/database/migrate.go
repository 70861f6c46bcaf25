package database

import (
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/models"
)

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Allergy{},
		&models.EatLevel{},
		&models.EatenFood{},
		&models.DailyRecommendation{},
		&models.MealKit{},
		&models.RecipeRecord{},
		&models.IngredientRecord{},
	)
}
