package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
	"github.com/mealcoach/backend/internal/types"
)

// IAuthService handles account creation and token issuance.
type IAuthService interface {
	Register(ctx context.Context, loginID, password, name string) (string, error)
	Login(ctx context.Context, loginID, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService reads and updates user attributes and assembles the
// planner's request payload from them.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	UpdateFoodSetting(ctx context.Context, userID uuid.UUID, req *types.UpdateFoodSettingRequest) (*models.User, error)
	BuildPlanRequest(ctx context.Context, userID uuid.UUID) (*planner.MealPlanRequest, error)
}

// IDiaryService manages the food diary.
type IDiaryService interface {
	ListEatenFoods(ctx context.Context, userID uuid.UUID) ([]models.EatenFood, error)
	UploadEatenFoodImage(ctx context.Context, userID uuid.UUID, name, filename string, data []byte, contentType string) (*models.EatenFood, error)
}

// IPlanService drives the generation pipeline and serves persisted results.
type IPlanService interface {
	GeneratePlan(ctx context.Context, userID uuid.UUID) (*planner.FinalizedPlan, error)
	LatestPlan(ctx context.Context, userID uuid.UUID) (*planner.FinalizedPlan, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.DailyRecommendation, error)
	ListMealKits(ctx context.Context, userID uuid.UUID) ([]models.MealKit, error)
	GenerateIngredients(ctx context.Context, dishName string) ([]planner.Ingredient, error)
}

// ObjectStorage is the put-and-return-URL contract the diary and image
// services need from S3.
type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}
