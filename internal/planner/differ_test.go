package planner

import "testing"

func TestDiff(t *testing.T) {
	monBreakfast := SlotKey{Day: Monday, Meal: Breakfast}
	monLunch := SlotKey{Day: Monday, Meal: Lunch}
	tueDinner := SlotKey{Day: Tuesday, Meal: Dinner}

	t.Run("removed slot", func(t *testing.T) {
		diff := Diff(WeekPlan{}, WeekPlan{monBreakfast: "Oatmeal"})

		if len(diff.NewOrChanged) != 0 {
			t.Errorf("Expected no new slots, got %v", diff.NewOrChanged)
		}
		if len(diff.Deleted) != 1 || diff.Deleted[monBreakfast] != "Oatmeal" {
			t.Errorf("Expected Mon-Breakfast Oatmeal to be deleted, got %v", diff.Deleted)
		}
	})

	t.Run("first import", func(t *testing.T) {
		current := WeekPlan{monBreakfast: "Oatmeal", monLunch: "Salad"}
		diff := Diff(current, WeekPlan{})

		if !diff.NewOrChanged.Equal(current) {
			t.Errorf("Expected every slot to be new, got %v", diff.NewOrChanged)
		}
		if len(diff.Deleted) != 0 {
			t.Errorf("Expected no deleted slots, got %v", diff.Deleted)
		}
	})

	t.Run("unchanged plan", func(t *testing.T) {
		plan := WeekPlan{monBreakfast: "Oatmeal"}
		if diff := Diff(plan, plan.Clone()); !diff.Empty() {
			t.Errorf("Expected empty diff, got %+v", diff)
		}
	})

	t.Run("changed recipe is only new", func(t *testing.T) {
		diff := Diff(
			WeekPlan{tueDinner: "Tacos"},
			WeekPlan{tueDinner: "Lasagna"},
		)

		if diff.NewOrChanged[tueDinner] != "Tacos" {
			t.Errorf("Expected Tue-Dinner Tacos to be new, got %v", diff.NewOrChanged)
		}
		if len(diff.Deleted) != 0 {
			t.Errorf("Expected the replaced recipe not to be deleted, got %v", diff.Deleted)
		}
	})

	t.Run("empty recipe counts as unassigned", func(t *testing.T) {
		diff := Diff(
			WeekPlan{monBreakfast: ""},
			WeekPlan{monBreakfast: "Oatmeal"},
		)

		if len(diff.NewOrChanged) != 0 {
			t.Errorf("Expected no new slots, got %v", diff.NewOrChanged)
		}
		if diff.Deleted[monBreakfast] != "Oatmeal" {
			t.Errorf("Expected Oatmeal to be deleted, got %v", diff.Deleted)
		}
	})
}
