package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports that a parsed response could not be coerced into
// the canonical three-meal structure. The orchestrator treats it like any
// other transient model failure and retries.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "meal plan validation: " + e.Reason
}

// flexNumber tolerates the model emitting numbers as strings ("12" or 12).
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = flexNumber(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			*n = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric value %q", str)
		}
		*n = flexNumber(parsed)
		return nil
	}
	if string(data) == "null" {
		*n = 0
		return nil
	}
	return fmt.Errorf("invalid numeric value %s", string(data))
}

type rawMacros struct {
	ProteinG flexNumber `json:"protein_g"`
	CarbG    flexNumber `json:"carb_g"`
	FatG     flexNumber `json:"fat_g"`
}

type rawItem struct {
	Name        string     `json:"name"`
	Macros      rawMacros  `json:"macros"`
	PrepTimeMin flexNumber `json:"prep_time_min"`
}

type rawContainer struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Items    []rawItem `json:"items"`
}

// Normalize reshapes a repaired JSON document into the canonical
// {breakfast, lunch, dinner} structure. A meal key only counts when it maps
// to an object with a list-valued "items" field; missing meals are filled
// with empty placeholders so the retry loop's item-count gate decides their
// fate, but a document with no usable meal at all is rejected outright.
func Normalize(jsonText string) (*CanonicalMealPlan, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &top); err != nil {
		return nil, &ValidationError{Reason: "response is not a JSON object"}
	}

	plan := &CanonicalMealPlan{}
	found := false
	for i, key := range mealKeys {
		raw, ok := top[key]
		if !ok {
			continue
		}
		var container rawContainer
		if err := json.Unmarshal(raw, &container); err != nil || container.Items == nil {
			continue
		}
		*plan.containers()[i] = convertContainer(container)
		found = true
	}
	if !found {
		return nil, &ValidationError{Reason: "no meal key with a list-valued items field"}
	}
	for _, c := range plan.containers() {
		if c.Items == nil {
			c.Items = []MealItem{}
		}
	}
	return plan, nil
}

func convertContainer(raw rawContainer) MealContainer {
	items := make([]MealItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		items = append(items, MealItem{
			Name: it.Name,
			Macros: Macros{
				ProteinG: float64(it.Macros.ProteinG),
				CarbG:    float64(it.Macros.CarbG),
				FatG:     float64(it.Macros.FatG),
			},
			PrepTimeMin: int(math.Round(float64(it.PrepTimeMin))),
		})
	}
	return MealContainer{
		Title:    raw.Title,
		Subtitle: raw.Subtitle,
		Items:    items,
	}
}
