package shopping

import (
	"strings"

	"meal-planner/internal/planner"
	"meal-planner/internal/quantity"
	"meal-planner/internal/recipe"
)

// Aggregate accumulates one ingredient across the meals of an import batch.
type Aggregate struct {
	Name        string
	Category    string
	Quantities  []string
	SourceMeals []MealIdentifier
}

// Quantity is the combined amount needed by every contributing meal.
func (a Aggregate) Quantity() string {
	return quantity.Combine(a.Quantities)
}

// Expand resolves each slot's recipe and aggregates the ingredients by
// lowercase name. Recipes missing from the lookup contribute nothing.
// Aggregates are returned in the order their ingredient was first seen,
// walking the slots in calendar order.
func Expand(week planner.Week, slots planner.WeekPlan, lookup recipe.Lookup) []Aggregate {
	var aggregates []Aggregate
	index := make(map[string]int)

	for _, slot := range slots.Slots() {
		recipeName := slots[slot]
		meal := MealIdentifier{Week: week, Slot: slot, Recipe: recipeName}

		for _, ing := range lookup.Ingredients(recipeName) {
			key := ingredientKey(ing.Name)
			if key == "" {
				continue
			}

			i, ok := index[key]
			if !ok {
				i = len(aggregates)
				index[key] = i
				aggregates = append(aggregates, Aggregate{
					Name:     strings.TrimSpace(ing.Name),
					Category: ing.Category,
				})
			}

			agg := &aggregates[i]
			if ing.Quantity != "" {
				agg.Quantities = append(agg.Quantities, ing.Quantity)
			}
			agg.SourceMeals = append(agg.SourceMeals, meal)
		}
	}

	return aggregates
}
