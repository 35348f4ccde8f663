package recipe

import "strings"

// DefaultCategory is used when an ingredient matches nothing.
const DefaultCategory = "Other"

// Categorize returns the grocery aisle for an ingredient name. It tries an
// exact, case-insensitive match first and then a keyword match.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DefaultCategory
	}

	if cat, ok := exactCategories[n]; ok {
		return cat
	}

	for _, entry := range keywordCategories {
		if strings.Contains(n, entry.keyword) {
			return entry.category
		}
	}

	return DefaultCategory
}

var exactCategories = map[string]string{
	"avocado":  "Produce",
	"garlic":   "Produce",
	"ginger":   "Produce",
	"lemon":    "Produce",
	"lime":     "Produce",
	"onion":    "Produce",
	"spinach":  "Produce",
	"tofu":     "Produce",
	"eggs":     "Dairy",
	"egg":      "Dairy",
	"milk":     "Dairy",
	"butter":   "Dairy",
	"parmesan": "Dairy",
	"bread":    "Bakery",
	"rice":     "Grains",
	"quinoa":   "Grains",
	"oats":     "Grains",
	"salt":     "Pantry",
	"pepper":   "Produce",
	"honey":    "Pantry",
	"flour":    "Pantry",
	"sugar":    "Pantry",
}

// Ordered so that more specific keywords win ("peanut butter" before "butter").
var keywordCategories = []struct {
	keyword  string
	category string
}{
	{"peanut butter", "Pantry"},
	{"salt and pepper", "Pantry"},
	{"black pepper", "Pantry"},
	{"pepper flakes", "Pantry"},
	{"chicken", "Meat & Seafood"},
	{"beef", "Meat & Seafood"},
	{"pork", "Meat & Seafood"},
	{"turkey", "Meat & Seafood"},
	{"salmon", "Meat & Seafood"},
	{"shrimp", "Meat & Seafood"},
	{"fish", "Meat & Seafood"},
	{"bacon", "Meat & Seafood"},
	{"yogurt", "Dairy"},
	{"cheese", "Dairy"},
	{"cream", "Dairy"},
	{"milk", "Dairy"},
	{"butter", "Dairy"},
	{"tortilla", "Bakery"},
	{"bread", "Bakery"},
	{"bun", "Bakery"},
	{"pasta", "Grains"},
	{"spaghetti", "Grains"},
	{"noodle", "Grains"},
	{"rice", "Grains"},
	{"oats", "Grains"},
	{"granola", "Grains"},
	{"oil", "Pantry"},
	{"sauce", "Pantry"},
	{"vinegar", "Pantry"},
	{"spice", "Pantry"},
	{"canned", "Pantry"},
	{"beans", "Pantry"},
	{"tomato", "Produce"},
	{"lettuce", "Produce"},
	{"greens", "Produce"},
	{"berries", "Produce"},
	{"potato", "Produce"},
	{"carrot", "Produce"},
	{"broccoli", "Produce"},
	{"pepper", "Produce"},
	{"mushroom", "Produce"},
	{"cilantro", "Produce"},
	{"parsley", "Produce"},
	{"basil", "Produce"},
}
