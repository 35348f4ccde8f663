package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

// ErrImportFailed is returned when an import could not read or persist its
// state. Nothing is written when it is returned.
var ErrImportFailed = errors.New("import failed")

// PlanProvider returns the live meal plan for a week.
type PlanProvider interface {
	Plan(ctx context.Context, week planner.Week) (planner.WeekPlan, error)
}

// SnapshotStore returns the plan as of the last successful import.
type SnapshotStore interface {
	Load(ctx context.Context, week planner.Week) (planner.WeekPlan, error)
}

// GroceryListStore returns the current grocery list.
type GroceryListStore interface {
	Get(ctx context.Context) (shopping.GroceryList, error)
}

// Committer persists the new grocery list and the week's snapshot together.
type Committer interface {
	Commit(ctx context.Context, week planner.Week, list shopping.GroceryList, snapshot planner.WeekPlan) error
}

// MetricsRecorder receives one metric per import attempt.
type MetricsRecorder interface {
	Record(ctx context.Context, m metrics.ImportMetric) error
}

// ImportResult describes what an import changed.
type ImportResult struct {
	Week    planner.Week
	Added   []string
	Updated []string
	Removed []string
	Summary string
	List    shopping.GroceryList
}

// Importer synchronizes a week's meal plan into the grocery list. Every
// week shares one list, so imports run one at a time whatever their week.
type Importer struct {
	mu sync.Mutex

	plans     PlanProvider
	snapshots SnapshotStore
	list      GroceryListStore
	lookup    recipe.Lookup
	committer Committer
	recorder  MetricsRecorder
}

// NewImporter creates a new Importer. recorder may be nil.
func NewImporter(
	plans PlanProvider,
	snapshots SnapshotStore,
	list GroceryListStore,
	lookup recipe.Lookup,
	committer Committer,
	recorder MetricsRecorder,
) *Importer {
	return &Importer{
		plans:     plans,
		snapshots: snapshots,
		list:      list,
		lookup:    lookup,
		committer: committer,
		recorder:  recorder,
	}
}

// Import applies the changes made to the week's plan since its last import.
// Slots that are new or whose recipe changed add their ingredients; slots
// that were removed subtract theirs. A recipe replaced in a slot does not
// give back the old recipe's ingredients.
func (im *Importer) Import(ctx context.Context, week planner.Week) (*ImportResult, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	start := time.Now()

	res, err := im.run(ctx, week)
	if err != nil {
		im.record(ctx, metrics.ImportMetric{
			Week:    week.String(),
			Status:  metrics.StatusFailed,
			Latency: time.Since(start),
		})
		return nil, err
	}

	im.record(ctx, metrics.ImportMetric{
		Week:    week.String(),
		Status:  metrics.StatusSuccess,
		Added:   len(res.Added),
		Updated: len(res.Updated),
		Removed: len(res.Removed),
		Latency: time.Since(start),
	})
	log.Printf("Imported week %s: %d added, %d updated, %d removed", week, len(res.Added), len(res.Updated), len(res.Removed))
	return res, nil
}

// Exclusive runs fn while no import is in progress. Other writers of the
// grocery list go through it so an import cannot overwrite their change.
func (im *Importer) Exclusive(fn func() error) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	return fn()
}

func (im *Importer) run(ctx context.Context, week planner.Week) (*ImportResult, error) {
	if week.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrImportFailed, planner.ErrInvalidWeek)
	}

	plan, err := im.plans.Plan(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load meal plan: %w", ErrImportFailed, err)
	}
	snapshot, err := im.snapshots.Load(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load import snapshot: %w", ErrImportFailed, err)
	}
	current, err := im.list.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load grocery list: %w", ErrImportFailed, err)
	}

	diff := planner.Diff(plan, snapshot)
	additions := shopping.Expand(week, diff.NewOrChanged, im.lookup)
	merged := shopping.Apply(current, additions, diff.Deleted, im.lookup)

	if err := im.committer.Commit(ctx, week, merged.List, plan); err != nil {
		return nil, fmt.Errorf("%w: failed to commit import: %w", ErrImportFailed, err)
	}

	return &ImportResult{
		Week:    week,
		Added:   merged.Added,
		Updated: merged.Updated,
		Removed: merged.Removed,
		Summary: Summarize(week, len(merged.Added), len(merged.Updated), len(merged.Removed)),
		List:    merged.List,
	}, nil
}

func (im *Importer) record(ctx context.Context, m metrics.ImportMetric) {
	if im.recorder == nil {
		return
	}
	if err := im.recorder.Record(ctx, m); err != nil {
		log.Printf("Warning: failed to record import metric for week %s: %v", m.Week, err)
	}
}
