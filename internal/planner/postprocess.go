package planner

import (
	"context"
	"math"
	"net/url"

	"go.uber.org/zap"
)

const storeSearchURL = "https://www.coupang.com/np/search?q="

// IngredientSource supplies a best-effort ingredient list for a dish name.
type IngredientSource interface {
	GenerateIngredients(ctx context.Context, dishName string) ([]Ingredient, error)
}

// PostProcessor turns a normalized plan into the finalized result: computed
// meta totals, authoritative per-item nutrition, optional ingredient lists
// and deterministic purchase-search links.
type PostProcessor struct {
	ingredients IngredientSource
	logger      *zap.Logger
}

// NewPostProcessor builds a post-processor. ingredients may be nil, in which
// case no ingredient lists are attached.
func NewPostProcessor(ingredients IngredientSource, logger *zap.Logger) *PostProcessor {
	return &PostProcessor{ingredients: ingredients, logger: logger}
}

// Finalize assembles the finalized plan from a canonical plan and the
// originating request. Ingredient sub-calls get a single attempt each;
// failures are logged and the item simply carries no ingredients.
func (p *PostProcessor) Finalize(ctx context.Context, plan *CanonicalMealPlan, req *MealPlanRequest) *FinalizedPlan {
	final := &FinalizedPlan{
		PlanMeta: PlanMeta{
			DailyCalorieTarget: req.DailyCalorieTarget,
			GoalNote:           "사용자 목표를 반영한 추천",
		},
	}

	var totals Macros
	totalKcal := 0
	src := plan.containers()
	dst := final.containers()
	for i := range src {
		dst[i].Title = src[i].Title
		dst[i].Subtitle = src[i].Subtitle
		dst[i].Items = make([]MealItem, 0, len(src[i].Items))
		for _, item := range src[i].Items {
			calories, breakdown, ratio := ComputeNutrition(item.Macros)
			item.Calories = calories
			item.KcalBreakdown = &breakdown
			item.MacrosRatio = &ratio
			totals.ProteinG += item.Macros.ProteinG
			totals.CarbG += item.Macros.CarbG
			totals.FatG += item.Macros.FatG
			totalKcal += calories
			dst[i].Items = append(dst[i].Items, item)
		}
	}

	final.PlanMeta.TotalCalories = totalKcal
	final.PlanMeta.MacrosTotal = Macros{
		ProteinG: roundTenth(totals.ProteinG),
		CarbG:    roundTenth(totals.CarbG),
		FatG:     roundTenth(totals.FatG),
	}
	_, _, final.PlanMeta.MacrosRatio = ComputeNutrition(totals)

	p.attachIngredients(ctx, final)
	attachSearchLinks(final)
	return final
}

func (p *PostProcessor) attachIngredients(ctx context.Context, final *FinalizedPlan) {
	if p.ingredients == nil {
		return
	}
	for _, c := range final.containers() {
		for i := range c.Items {
			ings, err := p.ingredients.GenerateIngredients(ctx, c.Items[i].Name)
			if err != nil {
				p.logger.Warn("ingredient generation skipped",
					zap.String("dish", c.Items[i].Name), zap.Error(err))
				continue
			}
			c.Items[i].Ingredients = ings
		}
	}
}

// attachSearchLinks adds a storefront search link per item (meal-kit query)
// and per ingredient. Links are deterministic URL-encoded queries; nothing
// verifies reachability.
func attachSearchLinks(final *FinalizedPlan) {
	for _, c := range final.containers() {
		for i := range c.Items {
			item := &c.Items[i]
			item.MealKitLink = storeSearchURL + url.QueryEscape(item.Name+" 밀키트")
			for j := range item.Ingredients {
				ing := &item.Ingredients[j]
				ing.PurchaseLink = storeSearchURL + url.QueryEscape(ing.Name)
			}
		}
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
