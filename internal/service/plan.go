package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
)

var ErrNoPlan = errors.New("no generated plan available")

const planCacheTTL = 24 * time.Hour

// PlanGenerator is the pipeline entry point the plan service drives.
type PlanGenerator interface {
	Generate(ctx context.Context, req *planner.MealPlanRequest) (*planner.CanonicalMealPlan, error)
}

// MealImageSource produces an image URL for one meal title.
type MealImageSource interface {
	GenerateMealImage(ctx context.Context, mealTitle string) (string, error)
}

// PlanService runs the full recommendation flow: profile payload, generation
// pipeline, post-processing, meal imagery, persistence and caching.
type PlanService struct {
	profile     IProfileService
	generator   PlanGenerator
	post        *planner.PostProcessor
	ingredients planner.IngredientSource
	images      MealImageSource
	recs        *RecommendationService
	cache       *redis.Client
	logger      *zap.Logger
}

func NewPlanService(
	profile IProfileService,
	generator PlanGenerator,
	post *planner.PostProcessor,
	ingredients planner.IngredientSource,
	images MealImageSource,
	recs *RecommendationService,
	cache *redis.Client,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		profile:     profile,
		generator:   generator,
		post:        post,
		ingredients: ingredients,
		images:      images,
		recs:        recs,
		cache:       cache,
		logger:      logger,
	}
}

// GeneratePlan produces, persists and caches a fresh plan for the user.
// Meal imagery and the cache write are best-effort; persistence is not.
func (s *PlanService) GeneratePlan(ctx context.Context, userID uuid.UUID) (*planner.FinalizedPlan, error) {
	req, err := s.profile.BuildPlanRequest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan request: %w", err)
	}

	plan, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	final := s.post.Finalize(ctx, plan, req)
	s.attachMealImages(ctx, final)

	if _, err := s.recs.SaveRecommendation(ctx, userID, final); err != nil {
		return nil, fmt.Errorf("failed to persist recommendation: %w", err)
	}

	s.cachePlan(ctx, userID, final)
	return final, nil
}

func (s *PlanService) attachMealImages(ctx context.Context, final *planner.FinalizedPlan) {
	if s.images == nil {
		return
	}
	for _, c := range []*planner.MealContainer{&final.Breakfast, &final.Lunch, &final.Dinner} {
		if c.Title == "" {
			continue
		}
		url, err := s.images.GenerateMealImage(ctx, c.Title)
		if err != nil {
			s.logger.Warn("meal image generation skipped",
				zap.String("meal", c.Title), zap.Error(err))
			continue
		}
		c.ImageURL = url
	}
}

func planCacheKey(userID uuid.UUID) string {
	return "mealplan:latest:" + userID.String()
}

func (s *PlanService) cachePlan(ctx context.Context, userID uuid.UUID, final *planner.FinalizedPlan) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(final)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, planCacheKey(userID), payload, planCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache plan", zap.Error(err))
	}
}

// LatestPlan serves the most recent plan from cache.
func (s *PlanService) LatestPlan(ctx context.Context, userID uuid.UUID) (*planner.FinalizedPlan, error) {
	if s.cache == nil {
		return nil, ErrNoPlan
	}
	payload, err := s.cache.Get(ctx, planCacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoPlan
		}
		return nil, err
	}
	var final planner.FinalizedPlan
	if err := json.Unmarshal(payload, &final); err != nil {
		return nil, fmt.Errorf("corrupt cached plan: %w", err)
	}
	return &final, nil
}

func (s *PlanService) History(ctx context.Context, userID uuid.UUID) ([]models.DailyRecommendation, error) {
	return s.recs.ListRecommendations(ctx, userID)
}

func (s *PlanService) ListMealKits(ctx context.Context, userID uuid.UUID) ([]models.MealKit, error) {
	return s.recs.ListMealKits(ctx, userID)
}

func (s *PlanService) GenerateIngredients(ctx context.Context, dishName string) ([]planner.Ingredient, error) {
	return s.ingredients.GenerateIngredients(ctx, dishName)
}
