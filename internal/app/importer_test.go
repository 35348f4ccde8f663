package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

var (
	monBreakfast = planner.SlotKey{Day: planner.Monday, Meal: planner.Breakfast}
	monLunch     = planner.SlotKey{Day: planner.Monday, Meal: planner.Lunch}
	tueDinner    = planner.SlotKey{Day: planner.Tuesday, Meal: planner.Dinner}
)

// --- Fakes ---

type fakePlans struct {
	plans map[string]planner.WeekPlan
	err   error
}

func (f *fakePlans) Plan(ctx context.Context, week planner.Week) (planner.WeekPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans[week.String()].Clone(), nil
}

func (f *fakePlans) set(week planner.Week, plan planner.WeekPlan) {
	f.plans[week.String()] = plan
}

// memStore keeps the grocery list and the snapshots in memory.
type memStore struct {
	list      shopping.GroceryList
	snapshots map[string]planner.WeekPlan
	commitErr error
	commits   int
}

func newMemStore() *memStore {
	return &memStore{snapshots: make(map[string]planner.WeekPlan)}
}

func (m *memStore) Get(ctx context.Context) (shopping.GroceryList, error) {
	return m.list.Clone(), nil
}

func (m *memStore) Load(ctx context.Context, week planner.Week) (planner.WeekPlan, error) {
	if snap, ok := m.snapshots[week.String()]; ok {
		return snap.Clone(), nil
	}
	return planner.WeekPlan{}, nil
}

func (m *memStore) Commit(ctx context.Context, week planner.Week, list shopping.GroceryList, snapshot planner.WeekPlan) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits++
	m.list = list.Clone()
	m.snapshots[week.String()] = snapshot.Clone()
	return nil
}

// slowList delays reads so that unserialized imports would interleave.
type slowList struct {
	*memStore
	delay time.Duration
}

func (s slowList) Get(ctx context.Context) (shopping.GroceryList, error) {
	time.Sleep(s.delay)
	return s.memStore.Get(ctx)
}

type fakeRecorder struct {
	metrics []metrics.ImportMetric
}

func (f *fakeRecorder) Record(ctx context.Context, m metrics.ImportMetric) error {
	f.metrics = append(f.metrics, m)
	return nil
}

type importFixture struct {
	week     planner.Week
	plans    *fakePlans
	store    *memStore
	recorder *fakeRecorder
	importer *Importer
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	catalog, err := recipe.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}
	week, _ := planner.ParseWeek("2026-10-19")

	f := &importFixture{
		week:     week,
		plans:    &fakePlans{plans: make(map[string]planner.WeekPlan)},
		store:    newMemStore(),
		recorder: &fakeRecorder{},
	}
	f.importer = NewImporter(f.plans, f.store, f.store, catalog, f.store, f.recorder)
	return f
}

func (f *importFixture) mustImport(t *testing.T) *ImportResult {
	t.Helper()
	res, err := f.importer.Import(context.Background(), f.week)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	return res
}

func quantityOf(t *testing.T, list shopping.GroceryList, name string) string {
	t.Helper()
	item, ok := list.Find(name)
	if !ok {
		t.Fatalf("Expected %q in grocery list", name)
	}
	return item.Quantity
}

// --- Tests ---

func TestImporter_FirstImportAndIdempotency(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{
		monBreakfast: "Oatmeal with Berries",
		monLunch:     "Grilled Chicken Salad",
	})

	first := f.mustImport(t)
	if len(first.Added) != 10 {
		t.Errorf("Expected 10 new items, got %d: %v", len(first.Added), first.Added)
	}
	if got := quantityOf(t, first.List, "olive oil"); got != "2 tbsp" {
		t.Errorf("Expected Olive Oil '2 tbsp', got %q", got)
	}
	if got := quantityOf(t, first.List, "Rolled Oats"); got != "1/2 cup" {
		t.Errorf("Expected Rolled Oats '1/2 cup', got %q", got)
	}
	oats, _ := first.List.Find("Rolled Oats")
	if len(oats.SourceMeals) != 1 || oats.SourceMeals[0].String() != "2026-10-19|Mon-Breakfast|Oatmeal with Berries" {
		t.Errorf("Unexpected provenance %v", oats.SourceMeals)
	}
	if !f.store.snapshots[f.week.String()].Equal(f.plans.plans[f.week.String()]) {
		t.Error("Expected the snapshot to equal the plan after import")
	}

	second := f.mustImport(t)
	if len(second.Added)+len(second.Updated)+len(second.Removed) != 0 {
		t.Errorf("Expected a no-op second import, got %+v", second)
	}
	if second.Summary != "No changes for week of 2026-10-19." {
		t.Errorf("Unexpected summary %q", second.Summary)
	}
	if len(second.List) != len(first.List) {
		t.Errorf("Expected the list to be unchanged, got %d items", len(second.List))
	}
	for i := range first.List {
		if first.List[i].Quantity != second.List[i].Quantity || len(first.List[i].SourceMeals) != len(second.List[i].SourceMeals) {
			t.Errorf("Item %q changed on re-import", first.List[i].Name)
		}
	}

	if len(f.recorder.metrics) != 2 || f.recorder.metrics[0].Added != 10 || f.recorder.metrics[1].Status != metrics.StatusSuccess {
		t.Errorf("Unexpected recorded metrics %+v", f.recorder.metrics)
	}
}

func TestImporter_AddedAndRemovedSlots(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{monLunch: "Grilled Chicken Salad"})
	f.mustImport(t)

	f.plans.set(f.week, planner.WeekPlan{
		monLunch:  "Grilled Chicken Salad",
		tueDinner: "Salmon with Roasted Vegetables",
	})
	res := f.mustImport(t)
	if got := quantityOf(t, res.List, "Olive Oil"); got != "3 tbsp" {
		t.Errorf("Expected Olive Oil '3 tbsp', got %q", got)
	}
	oil, _ := res.List.Find("Olive Oil")
	if len(oil.SourceMeals) != 2 {
		t.Errorf("Expected two contributing meals, got %v", oil.SourceMeals)
	}
	if got := quantityOf(t, res.List, "Salt and Pepper"); got != "Salt and pepper to taste" {
		t.Errorf("Unexpected Salt and Pepper quantity %q", got)
	}

	f.plans.set(f.week, planner.WeekPlan{tueDinner: "Salmon with Roasted Vegetables"})
	res = f.mustImport(t)
	if got := quantityOf(t, res.List, "Olive Oil"); got != "1 tbsp" {
		t.Errorf("Expected Olive Oil '1 tbsp', got %q", got)
	}
	if _, ok := res.List.Find("Chicken Breast"); ok {
		t.Error("Expected Chicken Breast to be removed with Mon-Lunch")
	}
	if len(res.Removed) != 5 {
		t.Errorf("Expected 5 removed items, got %v", res.Removed)
	}
}

func TestImporter_RemovedSlotDeletesItems(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{monLunch: "Grilled Chicken Salad"})
	f.mustImport(t)

	f.plans.set(f.week, planner.WeekPlan{})
	res := f.mustImport(t)

	if len(res.List) != 0 {
		t.Errorf("Expected an empty list, got %+v", res.List)
	}
	if len(res.Removed) != 6 || res.Removed[4] != "Olive Oil" {
		t.Errorf("Unexpected removed items %v", res.Removed)
	}
	if len(f.store.snapshots[f.week.String()]) != 0 {
		t.Error("Expected the snapshot to be emptied")
	}
}

func TestImporter_RecipeChangeKeepsPreviousIngredients(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{monLunch: "Grilled Chicken Salad"})
	f.mustImport(t)

	f.plans.set(f.week, planner.WeekPlan{monLunch: "Turkey Wrap"})
	res := f.mustImport(t)

	if _, ok := res.List.Find("Chicken Breast"); !ok {
		t.Error("Expected the replaced recipe's ingredients to stay on the list")
	}
	// "4 cups" and "1 cup" do not share a unit textually.
	if got := quantityOf(t, res.List, "Mixed Greens"); got != "2x servings" {
		t.Errorf("Expected Mixed Greens '2x servings', got %q", got)
	}
	if len(res.Removed) != 0 {
		t.Errorf("Expected nothing removed, got %v", res.Removed)
	}
}

func TestImporter_UnknownRecipe(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{monLunch: "Grandma's Secret Stew"})

	res := f.mustImport(t)
	if len(res.List) != 0 {
		t.Errorf("Expected no items, got %+v", res.List)
	}
	if _, ok := f.store.snapshots[f.week.String()][monLunch]; !ok {
		t.Error("Expected the slot to be recorded in the snapshot")
	}
}

func TestImporter_Failures(t *testing.T) {
	t.Run("CommitFails", func(t *testing.T) {
		f := newImportFixture(t)
		f.plans.set(f.week, planner.WeekPlan{monLunch: "Grilled Chicken Salad"})
		f.store.commitErr = fmt.Errorf("disk full")

		_, err := f.importer.Import(context.Background(), f.week)
		if !errors.Is(err, ErrImportFailed) {
			t.Fatalf("Expected ErrImportFailed, got %v", err)
		}
		if len(f.store.list) != 0 || len(f.store.snapshots) != 0 {
			t.Error("Expected nothing to be written")
		}
		if len(f.recorder.metrics) != 1 || f.recorder.metrics[0].Status != metrics.StatusFailed {
			t.Errorf("Expected a failed metric, got %+v", f.recorder.metrics)
		}
	})

	t.Run("PlanUnavailable", func(t *testing.T) {
		f := newImportFixture(t)
		f.plans.err = fmt.Errorf("connection reset")

		_, err := f.importer.Import(context.Background(), f.week)
		if !errors.Is(err, ErrImportFailed) {
			t.Fatalf("Expected ErrImportFailed, got %v", err)
		}
		if f.store.commits != 0 {
			t.Error("Expected no commit")
		}
	})

	t.Run("ZeroWeek", func(t *testing.T) {
		f := newImportFixture(t)
		_, err := f.importer.Import(context.Background(), planner.Week{})
		if !errors.Is(err, ErrImportFailed) || !errors.Is(err, planner.ErrInvalidWeek) {
			t.Errorf("Expected ErrImportFailed wrapping ErrInvalidWeek, got %v", err)
		}
	})
}

func TestImporter_ConcurrentWeeksShareList(t *testing.T) {
	f := newImportFixture(t)
	catalog, _ := recipe.DefaultCatalog()
	nextWeek, _ := planner.ParseWeek("2026-10-26")
	f.plans.set(f.week, planner.WeekPlan{monBreakfast: "Oatmeal with Berries"})
	f.plans.set(nextWeek, planner.WeekPlan{monLunch: "Grilled Chicken Salad"})

	im := NewImporter(f.plans, f.store, slowList{memStore: f.store, delay: 20 * time.Millisecond}, catalog, f.store, f.recorder)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, week := range []planner.Week{f.week, nextWeek} {
		wg.Add(1)
		go func(week planner.Week) {
			defer wg.Done()
			if _, err := im.Import(context.Background(), week); err != nil {
				errs <- err
			}
		}(week)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Import failed: %v", err)
	}

	if len(f.store.list) != 10 {
		t.Errorf("Expected items from both weeks, got %d", len(f.store.list))
	}
	for _, name := range []string{"Rolled Oats", "Chicken Breast"} {
		if _, ok := f.store.list.Find(name); !ok {
			t.Errorf("Expected %q in grocery list", name)
		}
	}
	if len(f.store.snapshots) != 2 {
		t.Errorf("Expected both weeks to be snapshotted, got %v", f.store.snapshots)
	}
}

func TestImporter_Exclusive(t *testing.T) {
	f := newImportFixture(t)
	f.plans.set(f.week, planner.WeekPlan{monBreakfast: "Oatmeal with Berries"})

	done := make(chan struct{})
	err := f.importer.Exclusive(func() error {
		go func() {
			defer close(done)
			f.importer.Import(context.Background(), f.week)
		}()
		time.Sleep(20 * time.Millisecond)
		if f.store.commits != 0 {
			t.Error("Expected the import to wait for the exclusive section")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Exclusive failed: %v", err)
	}

	<-done
	if f.store.commits != 1 {
		t.Errorf("Expected the import to commit afterwards, got %d commits", f.store.commits)
	}
}

func TestSummarize(t *testing.T) {
	week, _ := planner.ParseWeek("2026-10-21")
	tests := []struct {
		added, updated, removed int
		want                    string
	}{
		{0, 0, 0, "No changes for week of 2026-10-19."},
		{3, 0, 0, "Week of 2026-10-19: 3 added."},
		{1, 2, 1, "Week of 2026-10-19: 1 added, 2 updated, 1 removed."},
		{0, 0, 4, "Week of 2026-10-19: 4 removed."},
	}
	for _, tt := range tests {
		if got := Summarize(week, tt.added, tt.updated, tt.removed); got != tt.want {
			t.Errorf("Summarize(%d, %d, %d) = %q, want %q", tt.added, tt.updated, tt.removed, got, tt.want)
		}
	}
}
