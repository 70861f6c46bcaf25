package planner

import "math"

// Calorie factors per gram of macronutrient.
const (
	kcalPerProteinGram = 4
	kcalPerCarbGram    = 4
	kcalPerFatGram     = 9
)

// ComputeNutrition derives total calories, the per-macro calorie breakdown
// and the integer percentage ratio from gram quantities. The result is
// authoritative: calorie figures reported by the model are discarded in
// favor of this computation so displayed calories always match the macros.
func ComputeNutrition(m Macros) (int, KcalBreakdown, MacroRatio) {
	breakdown := KcalBreakdown{
		ProteinKcal: int(math.Round(m.ProteinG * kcalPerProteinGram)),
		CarbKcal:    int(math.Round(m.CarbG * kcalPerCarbGram)),
		FatKcal:     int(math.Round(m.FatG * kcalPerFatGram)),
	}
	total := breakdown.ProteinKcal + breakdown.CarbKcal + breakdown.FatKcal

	var ratio MacroRatio
	if total > 0 {
		ratio.ProteinPct = roundPct(breakdown.ProteinKcal, total)
		ratio.CarbPct = roundPct(breakdown.CarbKcal, total)
		ratio.FatPct = roundPct(breakdown.FatKcal, total)
	}
	return total, breakdown, ratio
}

func roundPct(part, total int) int {
	return int(math.Round(float64(part) * 100 / float64(total)))
}
