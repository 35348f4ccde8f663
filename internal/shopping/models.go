package shopping

import (
	"fmt"
	"strings"

	"meal-planner/internal/planner"
)

// MealIdentifier records which planned meal contributed to an item.
type MealIdentifier struct {
	Week   planner.Week    `json:"week"`
	Slot   planner.SlotKey `json:"slot"`
	Recipe string          `json:"recipe"`
}

func (m MealIdentifier) String() string {
	return fmt.Sprintf("%s|%s|%s", m.Week, m.Slot, m.Recipe)
}

// GroceryItem is one entry of the grocery list. Items are identified by
// their name, compared case-insensitively.
type GroceryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
	// Quantity is the formatted amount, empty when unknown.
	Quantity    string           `json:"quantity,omitempty"`
	SourceMeals []MealIdentifier `json:"source_meals"`
}

// GroceryList is an ordered list of grocery items.
type GroceryList []GroceryItem

// Index returns the position of the item with the given name, or -1.
func (l GroceryList) Index(name string) int {
	key := ingredientKey(name)
	for i := range l {
		if ingredientKey(l[i].Name) == key {
			return i
		}
	}
	return -1
}

// Find returns the item with the given name.
func (l GroceryList) Find(name string) (GroceryItem, bool) {
	if i := l.Index(name); i >= 0 {
		return l[i], true
	}
	return GroceryItem{}, false
}

// Clone returns a deep copy of the list.
func (l GroceryList) Clone() GroceryList {
	out := make(GroceryList, len(l))
	for i, item := range l {
		item.SourceMeals = append([]MealIdentifier(nil), item.SourceMeals...)
		out[i] = item
	}
	return out
}

// ByCategory groups items by category, preserving list order inside each
// group. Categories are returned in order of first appearance.
func (l GroceryList) ByCategory() ([]string, map[string]GroceryList) {
	var order []string
	groups := make(map[string]GroceryList)
	for _, item := range l {
		if _, ok := groups[item.Category]; !ok {
			order = append(order, item.Category)
		}
		groups[item.Category] = append(groups[item.Category], item)
	}
	return order, groups
}

func ingredientKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
