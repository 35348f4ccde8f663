package recipe

import (
	"strings"
)

// Ingredient is one line of a recipe as the grocery list needs it.
type Ingredient struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Recipe is a named list of ingredients.
type Recipe struct {
	Name        string       `json:"name" yaml:"name"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	SourceURL   string       `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Lookup resolves a recipe name to its ingredients. Unknown recipes resolve
// to no ingredients.
type Lookup interface {
	Ingredients(recipeName string) []Ingredient
}

// Key normalizes a recipe name for lookups.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
