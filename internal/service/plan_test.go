package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
)

type fakeGenerator struct {
	plan *planner.CanonicalMealPlan
	err  error
	req  *planner.MealPlanRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req *planner.MealPlanRequest) (*planner.CanonicalMealPlan, error) {
	f.req = req
	return f.plan, f.err
}

type fakeImageSource struct {
	calls []string
	err   error
}

func (f *fakeImageSource) GenerateMealImage(_ context.Context, mealTitle string) (string, error) {
	f.calls = append(f.calls, mealTitle)
	if f.err != nil {
		return "", f.err
	}
	return "https://img.example/" + mealTitle + ".png", nil
}

func canonicalPlanFixture() *planner.CanonicalMealPlan {
	plan := &planner.CanonicalMealPlan{}
	fill := func(c *planner.MealContainer, prefix string) {
		c.Title = prefix + " 구이와 반찬"
		for i := 0; i < planner.ItemsPerMeal; i++ {
			c.Items = append(c.Items, planner.MealItem{
				Name:        fmt.Sprintf("%s 요리 %d", prefix, i),
				Macros:      planner.Macros{ProteinG: 9, CarbG: 16, FatG: 4},
				PrepTimeMin: 15,
			})
		}
	}
	fill(&plan.Breakfast, "아침")
	fill(&plan.Lunch, "점심")
	fill(&plan.Dinner, "저녁")
	return plan
}

func newPlanServiceForTest(t *testing.T, gen PlanGenerator, images MealImageSource) (*PlanService, *models.User) {
	t.Helper()
	db := setupTestDB(t)
	user := seedUser(t, db)

	svc := NewPlanService(
		NewProfileService(db),
		gen,
		planner.NewPostProcessor(nil, zap.NewNop()),
		nil,
		images,
		NewRecommendationService(db),
		nil,
		zap.NewNop(),
	)
	return svc, user
}

func TestGeneratePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("generates, post-processes and persists", func(t *testing.T) {
		gen := &fakeGenerator{plan: canonicalPlanFixture()}
		images := &fakeImageSource{}
		svc, user := newPlanServiceForTest(t, gen, images)

		final, err := svc.GeneratePlan(ctx, user.ID)
		require.NoError(t, err)

		// the profile payload reached the generator
		require.NotNil(t, gen.req)
		assert.Equal(t, "male", gen.req.Sex)

		// derived nutrition is attached
		assert.NotZero(t, final.PlanMeta.TotalCalories)
		assert.NotNil(t, final.Breakfast.Items[0].KcalBreakdown)
		assert.NotEmpty(t, final.Lunch.Items[0].MealKitLink)

		// one image per meal
		assert.Len(t, images.calls, 3)
		assert.NotEmpty(t, final.Dinner.ImageURL)

		// the plan landed in history
		recs, err := svc.History(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Len(t, recs[0].MealKits, 15)
	})

	t.Run("image failures do not fail the plan", func(t *testing.T) {
		gen := &fakeGenerator{plan: canonicalPlanFixture()}
		images := &fakeImageSource{err: errors.New("images down")}
		svc, user := newPlanServiceForTest(t, gen, images)

		final, err := svc.GeneratePlan(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, final.Breakfast.ImageURL)
	})

	t.Run("generator exhaustion propagates", func(t *testing.T) {
		gen := &fakeGenerator{err: &planner.ExhaustionError{FinishReason: "stop"}}
		svc, user := newPlanServiceForTest(t, gen, nil)

		_, err := svc.GeneratePlan(ctx, user.ID)
		var exhausted *planner.ExhaustionError
		require.ErrorAs(t, err, &exhausted)

		// nothing persisted for the failed generation
		recs, histErr := svc.History(ctx, user.ID)
		require.NoError(t, histErr)
		assert.Empty(t, recs)
	})

	t.Run("latest plan without cache reports no plan", func(t *testing.T) {
		gen := &fakeGenerator{plan: canonicalPlanFixture()}
		svc, user := newPlanServiceForTest(t, gen, nil)

		_, err := svc.LatestPlan(ctx, user.ID)
		assert.ErrorIs(t, err, ErrNoPlan)
	})
}
