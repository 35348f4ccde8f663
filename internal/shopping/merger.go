package shopping

import (
	"github.com/google/uuid"

	"meal-planner/internal/planner"
	"meal-planner/internal/quantity"
	"meal-planner/internal/recipe"
)

// MergeResult is the grocery list after an import together with the names
// of the items that changed.
type MergeResult struct {
	List    GroceryList
	Added   []string
	Updated []string
	Removed []string
}

// Empty reports whether the import changed nothing.
func (r MergeResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Updated) == 0 && len(r.Removed) == 0
}

// Apply folds an import into the grocery list. The removed slots are
// processed first: each ingredient of their recipe is subtracted from the
// matching item, deleting it when nothing is left. The aggregated additions
// are then merged into the resulting list, creating items that do not exist
// yet. The input list is not modified.
func Apply(
	current GroceryList,
	additions []Aggregate,
	removed planner.WeekPlan,
	lookup recipe.Lookup,
) MergeResult {
	list := current.Clone()
	added, updated, deleted := newNameSet(), newNameSet(), newNameSet()

	for _, slot := range removed.Slots() {
		for _, ing := range lookup.Ingredients(removed[slot]) {
			i := list.Index(ing.Name)
			if i < 0 {
				continue
			}

			remaining, keep := quantity.Subtract(list[i].Quantity, ing.Quantity)
			if !keep {
				updated.remove(list[i].Name)
				deleted.add(list[i].Name)
				list = append(list[:i], list[i+1:]...)
				continue
			}
			list[i].Quantity = remaining
			updated.add(list[i].Name)
		}
	}

	for _, agg := range additions {
		incoming := agg.Quantity()

		if i := list.Index(agg.Name); i >= 0 {
			if incoming != "" {
				list[i].Quantity = quantity.Merge(list[i].Quantity, incoming)
			}
			list[i].SourceMeals = append(list[i].SourceMeals, agg.SourceMeals...)
			updated.add(list[i].Name)
			continue
		}

		category := agg.Category
		if category == "" {
			category = recipe.Categorize(agg.Name)
		}
		list = append(list, GroceryItem{
			ID:          uuid.NewString(),
			Name:        agg.Name,
			Category:    category,
			Checked:     false,
			Quantity:    incoming,
			SourceMeals: append([]MealIdentifier(nil), agg.SourceMeals...),
		})
		added.add(agg.Name)
	}

	return MergeResult{
		List:    list,
		Added:   added.names,
		Updated: updated.names,
		Removed: deleted.names,
	}
}

// nameSet keeps case-insensitively unique names in insertion order.
type nameSet struct {
	seen  map[string]bool
	names []string
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]bool)}
}

func (s *nameSet) add(name string) {
	key := ingredientKey(name)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.names = append(s.names, name)
}

func (s *nameSet) remove(name string) {
	key := ingredientKey(name)
	if !s.seen[key] {
		return
	}
	delete(s.seen, key)
	for i, n := range s.names {
		if ingredientKey(n) == key {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}
