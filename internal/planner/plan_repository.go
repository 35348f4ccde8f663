package planner

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"meal-planner/internal/planner/plan_db"
)

// PlanRepository is a database-backed store of the live weekly plans.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// Plan returns the slots assigned for the week. An empty plan is not an error.
func (r *PlanRepository) Plan(ctx context.Context, week Week) (WeekPlan, error) {
	rows, err := r.queries.ListMealSlotsByWeek(ctx, week.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list meal slots for week %s: %w", week, err)
	}

	plan := make(WeekPlan, len(rows))
	for _, row := range rows {
		key, err := ParseSlotKey(row.Day + "-" + row.MealType)
		if err != nil {
			log.Printf("Warning: skipping stored slot %s-%s for week %s: %v", row.Day, row.MealType, week, err)
			continue
		}
		plan[key] = row.RecipeName
	}
	return plan, nil
}

// Assign puts a recipe in a slot, replacing whatever was planned there.
func (r *PlanRepository) Assign(ctx context.Context, week Week, slot SlotKey, recipeName string) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot.String())
	}
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return r.Clear(ctx, week, slot)
	}

	err := r.queries.UpsertMealSlot(ctx, plan_db.UpsertMealSlotParams{
		Week:       week.String(),
		Day:        string(slot.Day),
		MealType:   string(slot.Meal),
		RecipeName: recipeName,
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to assign %s for week %s: %w", slot, week, err)
	}
	return nil
}

// Clear empties a slot. Clearing an empty slot is a no-op.
func (r *PlanRepository) Clear(ctx context.Context, week Week, slot SlotKey) error {
	err := r.queries.DeleteMealSlot(ctx, plan_db.DeleteMealSlotParams{
		Week:     week.String(),
		Day:      string(slot.Day),
		MealType: string(slot.Meal),
	})
	if err != nil {
		return fmt.Errorf("failed to clear %s for week %s: %w", slot, week, err)
	}
	return nil
}
