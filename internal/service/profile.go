package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
	"github.com/mealcoach/backend/internal/types"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Allergies").
		Preload("EatLevel").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.HeightCM != nil {
		user.HeightCM = *req.HeightCM
	}
	if req.WeightKG != nil {
		user.WeightKG = *req.WeightKG
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) UpdateFoodSetting(ctx context.Context, userID uuid.UUID, req *types.UpdateFoodSettingRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ActivityLevel != nil {
		user.ActivityLevel = *req.ActivityLevel
	}
	if req.DietGoal != nil {
		user.DietGoal = *req.DietGoal
	}
	if req.PreferredFood != nil {
		user.PreferredFood = *req.PreferredFood
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if req.Allergies != nil {
			allergies := make([]models.Allergy, 0, len(req.Allergies))
			for _, name := range req.Allergies {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				var a models.Allergy
				if err := tx.Where(models.Allergy{Name: name}).FirstOrCreate(&a).Error; err != nil {
					return err
				}
				allergies = append(allergies, a)
			}
			if err := tx.Model(user).Association("Allergies").Replace(allergies); err != nil {
				return err
			}
		}

		if req.EatLevel != nil {
			level := models.EatLevel{
				UserID:    user.ID,
				Breakfast: req.EatLevel.Breakfast,
				Lunch:     req.EatLevel.Lunch,
				Dinner:    req.EatLevel.Dinner,
			}
			var existing models.EatLevel
			if err := tx.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
				level.ID = existing.ID
				level.CreatedAt = existing.CreatedAt
			}
			if err := tx.Save(&level).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// BuildPlanRequest assembles the planner payload from the stored profile.
// Free-form Korean attribute values are coerced into the planner's vocabulary
// so the prompt stays stable regardless of how the profile was filled in.
func (s *ProfileService) BuildPlanRequest(ctx context.Context, userID uuid.UUID) (*planner.MealPlanRequest, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := &planner.MealPlanRequest{
		Age:           user.Age,
		Sex:           normalizeGender(user.Gender),
		HeightCM:      user.HeightCM,
		WeightKG:      user.WeightKG,
		ActivityLevel: normalizeActivity(user.ActivityLevel),
	}

	if user.DietGoal != "" {
		req.Goals = splitCSV(user.DietGoal)
	}
	if user.PreferredFood != "" {
		req.DietaryPreferences = splitCSV(user.PreferredFood)
	}
	for _, a := range user.Allergies {
		req.Allergies = append(req.Allergies, a.Name)
	}
	if user.EatLevel != nil {
		req.Notes = "식사량: 아침 " + user.EatLevel.Breakfast +
			", 점심 " + user.EatLevel.Lunch +
			", 저녁 " + user.EatLevel.Dinner
	}

	if target := estimateCalorieTarget(user, req.ActivityLevel); target > 0 {
		req.DailyCalorieTarget = &target
	}
	return req, nil
}

func normalizeGender(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE", "남", "남자", "남성":
		return "male"
	case "F", "FEMALE", "여", "여자", "여성":
		return "female"
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

// normalizeActivity collapses free-form exercise-frequency answers into
// low/moderate/high buckets.
func normalizeActivity(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "moderate"
	}
	switch {
	case strings.Contains(s, "매일"),
		strings.ContainsAny(s, "34567"):
		return "high"
	case strings.ContainsAny(s, "12"):
		return "moderate"
	default:
		return "low"
	}
}

var activityFactor = map[string]float64{
	"low":      1.2,
	"moderate": 1.45,
	"high":     1.7,
}

// estimateCalorieTarget applies Mifflin-St Jeor with an activity multiplier,
// shifted for explicit gain/loss goals. Returns 0 when the profile lacks the
// body measurements it needs.
func estimateCalorieTarget(user *models.User, activity string) int {
	if user.Age <= 0 || user.HeightCM <= 0 || user.WeightKG <= 0 {
		return 0
	}

	bmr := 10*user.WeightKG + 6.25*float64(user.HeightCM) - 5*float64(user.Age)
	if normalizeGender(user.Gender) == "female" {
		bmr -= 161
	} else {
		bmr += 5
	}

	factor, ok := activityFactor[activity]
	if !ok {
		factor = activityFactor["moderate"]
	}
	target := bmr * factor

	switch {
	case strings.Contains(user.DietGoal, "감량"), strings.Contains(user.DietGoal, "다이어트"):
		target -= 300
	case strings.Contains(user.DietGoal, "증량"), strings.Contains(user.DietGoal, "벌크"):
		target += 300
	}
	return int(math.Round(target))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
