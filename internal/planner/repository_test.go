package planner

import (
	"context"
	"path/filepath"
	"testing"

	"meal-planner/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPlanRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newTestDB(t).SQL)
	week, _ := ParseWeek("2026-10-19")
	monLunch := SlotKey{Day: Monday, Meal: Lunch}

	t.Run("EmptyWeek", func(t *testing.T) {
		plan, err := repo.Plan(ctx, week)
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		if len(plan) != 0 {
			t.Errorf("Expected empty plan, got %v", plan)
		}
	})

	t.Run("AssignAndReplace", func(t *testing.T) {
		if err := repo.Assign(ctx, week, monLunch, "Grilled Chicken Salad"); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		if err := repo.Assign(ctx, week, monLunch, "  Tacos "); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}

		plan, err := repo.Plan(ctx, week)
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		if plan[monLunch] != "Tacos" {
			t.Errorf("Expected Tacos, got %q", plan[monLunch])
		}

		other, _ := repo.Plan(ctx, week.Next())
		if len(other) != 0 {
			t.Errorf("Expected next week to stay empty, got %v", other)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := repo.Clear(ctx, week, monLunch); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		plan, _ := repo.Plan(ctx, week)
		if _, ok := plan[monLunch]; ok {
			t.Errorf("Expected Mon-Lunch to be cleared, got %v", plan)
		}
	})

	t.Run("InvalidSlot", func(t *testing.T) {
		if err := repo.Assign(ctx, week, SlotKey{Day: "Funday", Meal: Lunch}, "Cake"); err == nil {
			t.Error("Expected an error for an invalid slot")
		}
	})
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t).SQL)
	week, _ := ParseWeek("2026-10-19")

	t.Run("MissingSnapshotIsEmpty", func(t *testing.T) {
		snap, err := repo.Load(ctx, week)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if snap == nil || len(snap) != 0 {
			t.Errorf("Expected empty non-nil snapshot, got %v", snap)
		}
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		first := WeekPlan{
			{Day: Monday, Meal: Breakfast}: "Oatmeal with Berries",
			{Day: Monday, Meal: Lunch}:     "Grilled Chicken Salad",
		}
		second := WeekPlan{{Day: Monday, Meal: Breakfast}: "Oatmeal with Berries"}

		if err := repo.Save(ctx, week, first); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Save(ctx, week, second); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		snap, err := repo.Load(ctx, week)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !snap.Equal(second) {
			t.Errorf("Expected snapshot %v, got %v", second, snap)
		}
	})
}
