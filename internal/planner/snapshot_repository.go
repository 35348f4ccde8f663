package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/planner/plan_db"
)

// SnapshotRepository keeps, per week, the plan as of the last successful import.
type SnapshotRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(d *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// WithTx returns a SnapshotRepository that writes through the transaction.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
	}
}

// Load returns the snapshot for the week, or an empty plan if the week was
// never imported.
func (r *SnapshotRepository) Load(ctx context.Context, week Week) (WeekPlan, error) {
	row, err := r.queries.GetImportSnapshot(ctx, week.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WeekPlan{}, nil
		}
		return nil, fmt.Errorf("failed to get import snapshot for week %s: %w", week, err)
	}

	plan := WeekPlan{}
	if err := json.Unmarshal([]byte(row.Plan), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal import snapshot for week %s: %w", week, err)
	}
	return plan, nil
}

// Save replaces the snapshot for the week with plan.
func (r *SnapshotRepository) Save(ctx context.Context, week Week, plan WeekPlan) error {
	data, err := json.Marshal(plan.Clone())
	if err != nil {
		return fmt.Errorf("failed to marshal import snapshot: %w", err)
	}

	err = r.queries.UpsertImportSnapshot(ctx, plan_db.UpsertImportSnapshotParams{
		Week:      week.String(),
		Plan:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save import snapshot for week %s: %w", week, err)
	}
	return nil
}
