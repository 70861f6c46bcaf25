package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/planner"
	"github.com/mealcoach/backend/internal/service"
)

// PlanHandler serves plan generation, the latest cached plan, the persisted
// history, meal-kit details and ad-hoc ingredient lookups.
type PlanHandler struct {
	plans service.IPlanService
}

func NewPlanHandler(plans service.IPlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.plans.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		var exhausted *planner.ExhaustionError
		if errors.As(err, &exhausted) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":         "meal plan generation failed after all attempts",
				"finish_reason": exhausted.FinishReason,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate meal plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) LatestPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.plans.LatestPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPlan) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan generated yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recs, err := h.plans.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (h *PlanHandler) ListMealKits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	kits, err := h.plans.ListMealKits(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan generated yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal kits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_kits": kits})
}

type ingredientsRequest struct {
	DishName string `json:"dish_name" binding:"required"`
}

func (h *PlanHandler) GenerateIngredients(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req ingredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish_name is required"})
		return
	}

	ingredients, err := h.plans.GenerateIngredients(c.Request.Context(), req.DishName)
	if err != nil {
		var verr *planner.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ingredient generation failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
