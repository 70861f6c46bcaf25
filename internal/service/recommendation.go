package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
)

// RecommendationService maps finalized plans into the relational schema and
// serves the persisted history back out.
type RecommendationService struct {
	db *gorm.DB
}

func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// SaveRecommendation persists one finalized plan in a single transaction:
// the recommendation row, one meal-kit row per item, and a recipe with its
// ingredient rows. Any insert failure rolls the whole plan back.
func (s *RecommendationService) SaveRecommendation(ctx context.Context, userID uuid.UUID, plan *planner.FinalizedPlan) (*models.DailyRecommendation, error) {
	rec := &models.DailyRecommendation{
		UserID:        userID,
		TotalCalories: plan.PlanMeta.TotalCalories,
		ProteinG:      plan.PlanMeta.MacrosTotal.ProteinG,
		CarbG:         plan.PlanMeta.MacrosTotal.CarbG,
		FatG:          plan.PlanMeta.MacrosTotal.FatG,
		ProteinPct:    plan.PlanMeta.MacrosRatio.ProteinPct,
		CarbPct:       plan.PlanMeta.MacrosRatio.CarbPct,
		FatPct:        plan.PlanMeta.MacrosRatio.FatPct,
		GoalNote:      plan.PlanMeta.GoalNote,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		meals := []struct {
			mealType  string
			container *planner.MealContainer
		}{
			{"breakfast", &plan.Breakfast},
			{"lunch", &plan.Lunch},
			{"dinner", &plan.Dinner},
		}
		for _, meal := range meals {
			for _, item := range meal.container.Items {
				kit := models.MealKit{
					DailyRecommendationID: rec.ID,
					MealType:              meal.mealType,
					Name:                  item.Name,
					Calories:              item.Calories,
					ProteinG:              item.Macros.ProteinG,
					CarbG:                 item.Macros.CarbG,
					FatG:                  item.Macros.FatG,
					PrepTimeMin:           item.PrepTimeMin,
					PurchaseLink:          item.MealKitLink,
					ImageURL:              meal.container.ImageURL,
				}
				if err := tx.Create(&kit).Error; err != nil {
					return err
				}
				rec.MealKits = append(rec.MealKits, kit)
			}
		}

		if recipe := recipeFromPlan(rec.ID, plan); recipe != nil {
			if err := tx.Create(recipe).Error; err != nil {
				return err
			}
			rec.Recipe = recipe
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// recipeFromPlan picks the dinner main as the plan's recipe and carries its
// generated ingredient list into the recipe's rows. Nil when the plan has no
// item with ingredients.
func recipeFromPlan(recID uuid.UUID, plan *planner.FinalizedPlan) *models.RecipeRecord {
	for _, c := range []*planner.MealContainer{&plan.Dinner, &plan.Lunch, &plan.Breakfast} {
		for _, item := range c.Items {
			if len(item.Ingredients) == 0 {
				continue
			}
			recipe := &models.RecipeRecord{
				DailyRecommendationID: recID,
				Name:                  item.Name,
			}
			for _, ing := range item.Ingredients {
				recipe.Ingredients = append(recipe.Ingredients, models.IngredientRecord{
					Name:         ing.Name,
					Amount:       ing.Amount,
					PurchaseLink: ing.PurchaseLink,
				})
			}
			return recipe
		}
	}
	return nil
}

// ListRecommendations returns the user's persisted plans, newest first.
func (s *RecommendationService) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]models.DailyRecommendation, error) {
	var recs []models.DailyRecommendation
	err := s.db.WithContext(ctx).
		Preload("MealKits").
		Preload("Recipe").
		Preload("Recipe.Ingredients").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ListMealKits returns every meal-kit row from the user's most recent plan.
func (s *RecommendationService) ListMealKits(ctx context.Context, userID uuid.UUID) ([]models.MealKit, error) {
	var rec models.DailyRecommendation
	err := s.db.WithContext(ctx).
		Preload("MealKits").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return rec.MealKits, nil
}
