package planner

// PlanDiff is the difference between the live plan and the last import.
type PlanDiff struct {
	// NewOrChanged holds slots whose recipe is new or differs from the snapshot.
	NewOrChanged WeekPlan
	// Deleted holds slots that were imported before and are now empty,
	// keyed to the recipe recorded in the snapshot.
	Deleted WeekPlan
}

// Empty reports whether the import would change nothing.
func (d PlanDiff) Empty() bool {
	return len(d.NewOrChanged) == 0 && len(d.Deleted) == 0
}

// Diff compares the current plan of a week with its import snapshot.
//
// A slot whose recipe was replaced is reported only as changed; the previous
// recipe is not listed in Deleted, so its ingredients stay on the grocery list.
func Diff(current, snapshot WeekPlan) PlanDiff {
	diff := PlanDiff{
		NewOrChanged: WeekPlan{},
		Deleted:      WeekPlan{},
	}

	for slot, recipe := range current {
		if recipe == "" {
			continue
		}
		if snapshot[slot] != recipe {
			diff.NewOrChanged[slot] = recipe
		}
	}

	for slot, recipe := range snapshot {
		if recipe == "" {
			continue
		}
		if current[slot] == "" {
			diff.Deleted[slot] = recipe
		}
	}

	return diff
}
