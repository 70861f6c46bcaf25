package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/types"
)

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		LoginID:       "mealfan",
		PasswordHash:  "x",
		Name:          "홍길동",
		Gender:        "M",
		Age:           30,
		HeightCM:      175,
		WeightKG:      72,
		ActivityLevel: "주 3번 이상",
		DietGoal:      "체중 감량",
		PreferredFood: "한식, 샐러드",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestNormalizeGender(t *testing.T) {
	cases := map[string]string{
		"M":      "male",
		"MALE":   "male",
		"남자":     "male",
		"F":      "female",
		"여성":     "female",
		"male":   "male",
		"Female": "female",
		"":       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeGender(in), "input %q", in)
	}
}

func TestNormalizeActivity(t *testing.T) {
	cases := map[string]string{
		"매일":       "high",
		"주 3번 이상":  "high",
		"주 4~7회":   "high",
		"주 1~2번":   "moderate",
		"주 2번":     "moderate",
		"거의 안 함":   "low",
		"가끔":       "low",
		"":         "moderate",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeActivity(in), "input %q", in)
	}
}

func TestBuildPlanRequest(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user := seedUser(t, db)

	allergy := models.Allergy{Name: "땅콩"}
	require.NoError(t, db.Create(&allergy).Error)
	require.NoError(t, db.Model(user).Association("Allergies").Append(&allergy))
	require.NoError(t, db.Create(&models.EatLevel{
		UserID: user.ID, Breakfast: "적게", Lunch: "보통", Dinner: "많이",
	}).Error)

	svc := NewProfileService(db)
	req, err := svc.BuildPlanRequest(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "male", req.Sex)
	assert.Equal(t, 30, req.Age)
	assert.Equal(t, "high", req.ActivityLevel)
	assert.Equal(t, []string{"체중 감량"}, req.Goals)
	assert.Equal(t, []string{"한식", "샐러드"}, req.DietaryPreferences)
	assert.Equal(t, []string{"땅콩"}, req.Allergies)
	assert.Contains(t, req.Notes, "저녁 많이")

	require.NotNil(t, req.DailyCalorieTarget)
	// BMR 1668.75 x 1.7 activity, minus the loss-goal shift
	assert.Equal(t, 2537, *req.DailyCalorieTarget)
}

func TestEstimateCalorieTarget(t *testing.T) {
	t.Run("missing measurements yield no target", func(t *testing.T) {
		user := &models.User{Gender: "M", Age: 30}
		assert.Zero(t, estimateCalorieTarget(user, "moderate"))
	})

	t.Run("female offset applies", func(t *testing.T) {
		male := &models.User{Gender: "M", Age: 25, HeightCM: 170, WeightKG: 65}
		female := &models.User{Gender: "F", Age: 25, HeightCM: 170, WeightKG: 65}
		diff := estimateCalorieTarget(male, "low") - estimateCalorieTarget(female, "low")
		// 166 kcal BMR gap x 1.2 activity
		assert.InDelta(t, 199, diff, 1)
	})

	t.Run("gain goal raises the target", func(t *testing.T) {
		base := &models.User{Gender: "M", Age: 25, HeightCM: 170, WeightKG: 65}
		bulk := &models.User{Gender: "M", Age: 25, HeightCM: 170, WeightKG: 65, DietGoal: "근육 증량"}
		assert.Equal(t, 600,
			estimateCalorieTarget(bulk, "low")-estimateCalorieTarget(base, "low")+300)
	})
}

func TestUpdateFoodSetting(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewProfileService(db)

	level := "보통"
	activity := "주 2번"
	updated, err := svc.UpdateFoodSetting(ctx, user.ID, &types.UpdateFoodSettingRequest{
		ActivityLevel: &activity,
		Allergies:     []string{"우유", "새우"},
		EatLevel: &struct {
			Breakfast string `json:"breakfast"`
			Lunch     string `json:"lunch"`
			Dinner    string `json:"dinner"`
		}{Breakfast: level, Lunch: level, Dinner: level},
	})
	require.NoError(t, err)

	assert.Equal(t, "주 2번", updated.ActivityLevel)
	require.Len(t, updated.Allergies, 2)
	require.NotNil(t, updated.EatLevel)
	assert.Equal(t, "보통", updated.EatLevel.Lunch)

	// A second update replaces, not appends, the allergy set.
	updated, err = svc.UpdateFoodSetting(ctx, user.ID, &types.UpdateFoodSettingRequest{
		Allergies: []string{"우유"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Allergies, 1)
	assert.Equal(t, "우유", updated.Allergies[0].Name)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewProfileService(db)

	weight := 70.5
	updated, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{WeightKG: &weight})
	require.NoError(t, err)

	assert.Equal(t, 70.5, updated.WeightKG)
	// untouched fields stay put
	assert.Equal(t, "홍길동", updated.Name)
	assert.Equal(t, 175, updated.HeightCM)
}
