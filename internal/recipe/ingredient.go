package recipe

import (
	"strings"

	"meal-planner/internal/quantity"
)

var measureUnits = map[string]bool{
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"g": true, "gram": true, "grams": true, "kg": true,
	"ml": true, "l": true, "liter": true, "liters": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"clove": true, "cloves": true,
	"can": true, "cans": true,
	"pinch": true, "dash": true,
	"slice": true, "slices": true,
	"bunch": true, "handful": true,
	"package": true, "packages": true,
	"fillet": true, "fillets": true,
}

// ParseIngredientLine splits a free-text recipe line such as
// "2 tbsp olive oil" into an Ingredient. Lines without a measure unit keep
// the whole line as their quantity so that counted items ("3 eggs") still add
// up. The category is guessed with Categorize.
func ParseIngredientLine(line string) (Ingredient, bool) {
	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return Ingredient{}, false
	}

	q, ok := quantity.ParseStrict(line)
	if !ok || q.Unit == "" {
		return Ingredient{Name: line, Category: Categorize(line)}, true
	}

	words := strings.Fields(q.Unit)
	unit := strings.ToLower(strings.TrimSuffix(words[0], "."))
	if !measureUnits[unit] || len(words) == 1 {
		name := strings.TrimPrefix(q.Unit, "of ")
		return Ingredient{
			Name:     name,
			Category: Categorize(name),
			Quantity: line,
		}, true
	}

	name := strings.TrimPrefix(strings.Join(words[1:], " "), "of ")
	amount := quantity.Quantity{Value: q.Value, Unit: unit}
	return Ingredient{
		Name:     name,
		Category: Categorize(name),
		Quantity: amount.String(),
	}, true
}
