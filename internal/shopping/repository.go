package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	db "meal-planner/internal/shopping/shopping_db"
)

// ErrItemNotFound is returned when no grocery item has the requested name.
var ErrItemNotFound = errors.New("grocery item not found")

// Repository persists the single grocery list.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
	inTx    bool
}

// NewRepository creates a new grocery list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// WithTx returns a Repository that reads and writes through the transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		inTx:    true,
	}
}

// Get returns the grocery list in display order.
func (r *Repository) Get(ctx context.Context) (GroceryList, error) {
	rows, err := r.queries.ListGroceryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}

	list := make(GroceryList, 0, len(rows))
	for _, row := range rows {
		item := GroceryItem{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Checked:  row.Checked,
			Quantity: row.Quantity,
		}
		if err := json.Unmarshal([]byte(row.SourceMeals), &item.SourceMeals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal source meals for %s: %w", row.Name, err)
		}
		list = append(list, item)
	}
	return list, nil
}

// Set replaces the stored list with list.
func (r *Repository) Set(ctx context.Context, list GroceryList) error {
	if r.inTx {
		return replaceItems(ctx, r.queries, list)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceItems(ctx, r.queries.WithTx(tx), list); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit grocery list: %w", err)
	}
	return nil
}

// SetChecked marks the named item as bought or not.
func (r *Repository) SetChecked(ctx context.Context, name string, checked bool) error {
	n, err := r.queries.SetGroceryItemChecked(ctx, db.SetGroceryItemCheckedParams{
		Checked: checked,
		Name:    name,
	})
	if err != nil {
		return fmt.Errorf("failed to update grocery item %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	return nil
}

func replaceItems(ctx context.Context, q *db.Queries, list GroceryList) error {
	if err := q.DeleteAllGroceryItems(ctx); err != nil {
		return fmt.Errorf("failed to clear grocery items: %w", err)
	}

	for i, item := range list {
		meals := item.SourceMeals
		if meals == nil {
			meals = []MealIdentifier{}
		}
		mealsJSON, err := json.Marshal(meals)
		if err != nil {
			return fmt.Errorf("failed to marshal source meals: %w", err)
		}

		err = q.InsertGroceryItem(ctx, db.InsertGroceryItemParams{
			ID:          item.ID,
			Position:    int64(i),
			Name:        item.Name,
			Category:    item.Category,
			Checked:     item.Checked,
			Quantity:    item.Quantity,
			SourceMeals: string(mealsJSON),
		})
		if err != nil {
			return fmt.Errorf("failed to insert grocery item %q: %w", item.Name, err)
		}
	}
	return nil
}
