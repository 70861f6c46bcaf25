package planner

// MealPlanRequest carries the user attributes a generation request is built
// from. It is assembled once from the account store and not mutated afterwards.
type MealPlanRequest struct {
	Age                int      `json:"age"`
	Sex                string   `json:"sex"`
	HeightCM           int      `json:"height_cm"`
	WeightKG           float64  `json:"weight_kg"`
	ActivityLevel      string   `json:"activity_level"`
	Goals              []string `json:"goals"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	DailyCalorieTarget *int     `json:"daily_calorie_target"`
	Notes              string   `json:"notes"`
}

// Macros holds macronutrient gram quantities for one food item.
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbG    float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
}

// KcalBreakdown is the per-macro calorie contribution of an item.
type KcalBreakdown struct {
	ProteinKcal int `json:"protein_kcal"`
	CarbKcal    int `json:"carb_kcal"`
	FatKcal     int `json:"fat_kcal"`
}

// MacroRatio is the integer percentage split of calories between macros.
type MacroRatio struct {
	ProteinPct int `json:"protein_pct"`
	CarbPct    int `json:"carb_pct"`
	FatPct     int `json:"fat_pct"`
}

// Ingredient is one entry of a generated ingredient list. PurchaseLink is
// attached by the post-processor, never by the model.
type Ingredient struct {
	Name         string `json:"name"`
	Amount       string `json:"amount,omitempty"`
	PurchaseLink string `json:"purchase_link,omitempty"`
}

// MealItem is one recommended food within a meal. Name, Macros and
// PrepTimeMin come from the model; every other field is derived by the
// post-processor and overrides anything the model may have claimed.
type MealItem struct {
	Name        string `json:"name"`
	Calories    int    `json:"calories,omitempty"`
	Macros      Macros `json:"macros"`
	PrepTimeMin int    `json:"prep_time_min"`

	KcalBreakdown *KcalBreakdown `json:"kcal_breakdown,omitempty"`
	MacrosRatio   *MacroRatio    `json:"macros_ratio,omitempty"`
	Ingredients   []Ingredient   `json:"ingredients,omitempty"`
	MealKitLink   string         `json:"meal_kit_link,omitempty"`
}

// MealContainer is one of the breakfast/lunch/dinner slots.
type MealContainer struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Items    []MealItem `json:"items"`
	ImageURL string     `json:"image_url,omitempty"`
}

// CanonicalMealPlan is the validated three-meal structure produced by the
// schema normalizer. It is owned by a single generation request and never
// shared between concurrent requests.
type CanonicalMealPlan struct {
	Breakfast MealContainer `json:"breakfast"`
	Lunch     MealContainer `json:"lunch"`
	Dinner    MealContainer `json:"dinner"`
}

// ItemsPerMeal is the hard acceptance gate: a plan with any other item count
// is rejected by the orchestrator and retried.
const ItemsPerMeal = 5

var mealKeys = []string{"breakfast", "lunch", "dinner"}

func (p *CanonicalMealPlan) containers() []*MealContainer {
	return []*MealContainer{&p.Breakfast, &p.Lunch, &p.Dinner}
}

// Complete reports whether every meal holds exactly ItemsPerMeal items.
func (p *CanonicalMealPlan) Complete() bool {
	for _, c := range p.containers() {
		if len(c.Items) != ItemsPerMeal {
			return false
		}
	}
	return true
}

// PlanMeta holds the plan-wide totals computed once per finalized plan.
type PlanMeta struct {
	DailyCalorieTarget *int       `json:"daily_calorie_target"`
	GoalNote           string     `json:"goal_note"`
	TotalCalories      int        `json:"total_calories"`
	MacrosTotal        Macros     `json:"macros_total"`
	MacrosRatio        MacroRatio `json:"macros_ratio"`
}

// FinalizedPlan is the post-processed result handed back to the caller and
// to the persistence mapper.
type FinalizedPlan struct {
	PlanMeta  PlanMeta      `json:"plan_meta"`
	Breakfast MealContainer `json:"breakfast"`
	Lunch     MealContainer `json:"lunch"`
	Dinner    MealContainer `json:"dinner"`
}

func (p *FinalizedPlan) containers() []*MealContainer {
	return []*MealContainer{&p.Breakfast, &p.Lunch, &p.Dinner}
}
