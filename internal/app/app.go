package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

// App holds the application's dependencies.
type App struct {
	cfg           *config.Config
	catalog       *recipe.Catalog
	recipeRepo    *recipe.Repository
	planRepo      *planner.PlanRepository
	listRepo      *shopping.Repository
	metricsStore  *metrics.Store
	importer      *Importer
	recipeClipper *clipper.Clipper
}

// NewApp wires the repositories, the recipe catalog and the importer over db.
// collector may be nil.
func NewApp(ctx context.Context, cfg *config.Config, db *database.DB, collector *metrics.Collector) (*App, error) {
	recipeRepo := recipe.NewRepository(db.SQL)
	catalog, err := recipe.LoadCatalog(ctx, recipeRepo, cfg.RecipeCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	planRepo := planner.NewPlanRepository(db.SQL)
	snapshotRepo := planner.NewSnapshotRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)

	metricsStore := metrics.NewStore(db.SQL)
	if collector != nil {
		metricsStore.WithCollector(collector)
	}

	importer := NewImporter(
		planRepo,
		snapshotRepo,
		listRepo,
		catalog,
		NewSQLCommitter(db, listRepo, snapshotRepo),
		metricsStore,
	)

	return &App{
		cfg:           cfg,
		catalog:       catalog,
		recipeRepo:    recipeRepo,
		planRepo:      planRepo,
		listRepo:      listRepo,
		metricsStore:  metricsStore,
		importer:      importer,
		recipeClipper: clipper.NewClipper(cfg.ClipperTimeout, recipeRepo, catalog),
	}, nil
}

// Import synchronizes the week's plan into the grocery list.
func (a *App) Import(ctx context.Context, week planner.Week) (*ImportResult, error) {
	return a.importer.Import(ctx, week)
}

// Plan returns the meal plan for the week.
func (a *App) Plan(ctx context.Context, week planner.Week) (planner.WeekPlan, error) {
	return a.planRepo.Plan(ctx, week)
}

// Assign puts a recipe in a slot. It reports whether the recipe is known to
// the catalog; unknown recipes contribute no ingredients on import.
func (a *App) Assign(ctx context.Context, week planner.Week, slot planner.SlotKey, recipeName string) (bool, error) {
	if err := a.planRepo.Assign(ctx, week, slot, recipeName); err != nil {
		return false, err
	}
	_, known := a.catalog.Get(recipeName)
	return known, nil
}

// Clear empties a slot.
func (a *App) Clear(ctx context.Context, week planner.Week, slot planner.SlotKey) error {
	return a.planRepo.Clear(ctx, week, slot)
}

// GroceryList returns the current grocery list.
func (a *App) GroceryList(ctx context.Context) (shopping.GroceryList, error) {
	return a.listRepo.Get(ctx)
}

// CheckItem ticks or unticks a grocery item by name.
func (a *App) CheckItem(ctx context.Context, name string, checked bool) error {
	return a.importer.Exclusive(func() error {
		return a.listRepo.SetChecked(ctx, name, checked)
	})
}

// Recipes lists every recipe imports can expand.
func (a *App) Recipes() []recipe.Recipe {
	return a.catalog.Recipes()
}

// ClipRecipe adds the recipe found at url to the catalog.
func (a *App) ClipRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	rec, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return nil, err
	}
	log.Printf("Clipped recipe '%s' with %d ingredients", rec.Name, len(rec.Ingredients))
	return rec, nil
}

// SeedRecipes stores the built-in recipes that are not in the database yet
// and returns how many were added.
func (a *App) SeedRecipes(ctx context.Context) (int, error) {
	defaults, err := recipe.DefaultCatalog()
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, rec := range defaults.Recipes() {
		existing, err := a.recipeRepo.Get(ctx, rec.Name)
		if err != nil {
			return seeded, err
		}
		if existing != nil {
			log.Printf("Recipe '%s' already stored. Skipping.", rec.Name)
			continue
		}
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

// Stats is a usage and health report.
type Stats struct {
	Daily  []metrics.DailyImports
	Recent []metrics.ImportMetric
	Health metrics.Health
}

// Stats reports import activity over the last days together with process
// health.
func (a *App) Stats(ctx context.Context, days int) (*Stats, error) {
	daily, err := a.metricsStore.GetDailyImports(ctx, days)
	if err != nil {
		return nil, err
	}
	recent, err := a.metricsStore.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Daily:  daily,
		Recent: recent,
		Health: metrics.GetHealth(a.cfg.DatabasePath),
	}, nil
}

// CleanupMetrics removes import metrics older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	return a.metricsStore.Cleanup(ctx, days)
}

// PrintPlan writes the week's plan as plain text.
func PrintPlan(w io.Writer, week planner.Week, plan planner.WeekPlan) {
	fmt.Fprintf(w, "=== MEAL PLAN: WEEK OF %s ===\n", week)
	if len(plan.Slots()) == 0 {
		fmt.Fprintln(w, "(no meals planned)")
		return
	}
	for _, slot := range plan.Slots() {
		fmt.Fprintf(w, "%-14s %s\n", slot.String()+":", plan[slot])
	}
}

// PrintList writes the grocery list grouped by category.
func PrintList(w io.Writer, list shopping.GroceryList) {
	fmt.Fprintln(w, "=== GROCERY LIST ===")
	if len(list) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	order, groups := list.ByCategory()
	for _, category := range order {
		fmt.Fprintf(w, "\n%s\n", category)
		for _, item := range groups[category] {
			box := "[ ]"
			if item.Checked {
				box = "[x]"
			}
			if item.Quantity != "" {
				fmt.Fprintf(w, "  %s %s (%s)\n", box, item.Name, item.Quantity)
			} else {
				fmt.Fprintf(w, "  %s %s\n", box, item.Name)
			}
		}
	}
}

// ResolveWeek returns the week named by arg: "" or "this" for the current
// week, "next" for the following one, or a date inside the wanted week.
func ResolveWeek(arg string, now time.Time) (planner.Week, error) {
	switch arg {
	case "", "this":
		return planner.WeekOf(now), nil
	case "next":
		return planner.WeekOf(planner.GetNextMonday(now)), nil
	default:
		return planner.ParseWeek(arg)
	}
}
