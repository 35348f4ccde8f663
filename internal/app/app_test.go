package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, _ := newTestAppWithDB(t)
	return a
}

func newTestAppWithDB(t *testing.T) (*App, *database.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := database.NewDB(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	a, err := NewApp(context.Background(), &config.Config{DatabasePath: path, ClipperTimeout: time.Second}, db, nil)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a, db
}

func TestApp_ImportWithSQLite(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	week, _ := planner.ParseWeek("2026-10-19")

	known, err := a.Assign(ctx, week, monBreakfast, "oatmeal with berries")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if !known {
		t.Error("Expected the recipe to be found case-insensitively")
	}
	if _, err := a.Assign(ctx, week, monLunch, "Grilled Chicken Salad"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	res, err := a.Import(ctx, week)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(res.Added) != 10 {
		t.Errorf("Expected 10 added items, got %v", res.Added)
	}

	stored, err := a.GroceryList(ctx)
	if err != nil {
		t.Fatalf("GroceryList failed: %v", err)
	}
	if len(stored) != 10 {
		t.Fatalf("Expected 10 stored items, got %d", len(stored))
	}
	if stored[0].Name != res.List[0].Name || stored[0].ID != res.List[0].ID {
		t.Errorf("Expected stored order to match import result, got %+v", stored[0])
	}

	again, err := a.Import(ctx, week)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !strings.HasPrefix(again.Summary, "No changes") {
		t.Errorf("Expected a no-op re-import, got %q", again.Summary)
	}

	if err := a.Clear(ctx, week, monLunch); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	res, err = a.Import(ctx, week)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(res.Removed) != 6 || len(res.List) != 4 {
		t.Errorf("Expected Mon-Lunch ingredients removed, got removed=%v list=%d", res.Removed, len(res.List))
	}

	if err := a.CheckItem(ctx, "honey", true); err != nil {
		t.Fatalf("CheckItem failed: %v", err)
	}
	list, _ := a.GroceryList(ctx)
	honey, _ := list.Find("Honey")
	if !honey.Checked {
		t.Error("Expected Honey to be checked")
	}
	if err := a.CheckItem(ctx, "Caviar", true); !errors.Is(err, shopping.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}

	stats, err := a.Stats(ctx, 7)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats.Recent) != 3 || stats.Recent[0].Removed != 6 {
		t.Errorf("Unexpected recent imports %+v", stats.Recent)
	}
}

func TestApp_ImportRollsBackOnSnapshotFailure(t *testing.T) {
	ctx := context.Background()
	a, db := newTestAppWithDB(t)
	week, _ := planner.ParseWeek("2026-10-19")

	if _, err := a.Assign(ctx, week, monBreakfast, "Oatmeal with Berries"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := a.Import(ctx, week); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	before, err := a.GroceryList(ctx)
	if err != nil {
		t.Fatalf("GroceryList failed: %v", err)
	}

	_, err = db.SQL.ExecContext(ctx, `CREATE TRIGGER refuse_snapshot BEFORE INSERT ON import_snapshots
		BEGIN SELECT RAISE(ABORT, 'snapshot write refused'); END`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}
	if _, err := a.Assign(ctx, week, monLunch, "Grilled Chicken Salad"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if _, err := a.Import(ctx, week); !errors.Is(err, ErrImportFailed) {
		t.Fatalf("Expected ErrImportFailed, got %v", err)
	}
	after, err := a.GroceryList(ctx)
	if err != nil {
		t.Fatalf("GroceryList failed: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("Expected the list to be unchanged, got %d items, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Quantity != before[i].Quantity {
			t.Errorf("Item %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}

	if _, err := db.SQL.ExecContext(ctx, "DROP TRIGGER refuse_snapshot"); err != nil {
		t.Fatalf("failed to drop trigger: %v", err)
	}
	res, err := a.Import(ctx, week)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(res.Added) != 6 {
		t.Errorf("Expected the lunch ingredients to be added on retry, got %v", res.Added)
	}
}

func TestApp_SeedRecipes(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	n, err := a.SeedRecipes(ctx)
	if err != nil {
		t.Fatalf("SeedRecipes failed: %v", err)
	}
	if n != len(a.Recipes()) {
		t.Errorf("Expected %d seeded recipes, got %d", len(a.Recipes()), n)
	}

	n, err = a.SeedRecipes(ctx)
	if err != nil {
		t.Fatalf("SeedRecipes failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected a second seed to add nothing, got %d", n)
	}
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	PrintList(&buf, shopping.GroceryList{
		{Name: "Lemon", Category: "Produce", Quantity: "1"},
		{Name: "Salt", Category: "Pantry", Checked: true},
	})
	out := buf.String()
	for _, want := range []string{"Produce\n  [ ] Lemon (1)", "Pantry\n  [x] Salt\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintList(&buf, nil)
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("Expected empty marker, got %q", buf.String())
	}
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	week, _ := planner.ParseWeek("2026-10-19")
	PrintPlan(&buf, week, planner.WeekPlan{tueDinner: "Tacos", monLunch: "Salad"})
	out := buf.String()
	if strings.Index(out, "Mon-Lunch") > strings.Index(out, "Tue-Dinner") {
		t.Errorf("Expected calendar order, got:\n%s", out)
	}
}

func TestResolveWeek(t *testing.T) {
	now := time.Date(2026, 10, 22, 15, 0, 0, 0, time.UTC) // Thursday
	tests := map[string]string{
		"":           "2026-10-19",
		"this":       "2026-10-19",
		"next":       "2026-10-26",
		"2026-11-04": "2026-11-02",
	}
	for arg, want := range tests {
		week, err := ResolveWeek(arg, now)
		if err != nil {
			t.Fatalf("ResolveWeek(%q) failed: %v", arg, err)
		}
		if week.String() != want {
			t.Errorf("ResolveWeek(%q) = %s, want %s", arg, week, want)
		}
	}

	if _, err := ResolveWeek("someday", now); !errors.Is(err, planner.ErrInvalidWeek) {
		t.Errorf("Expected ErrInvalidWeek, got %v", err)
	}
}
