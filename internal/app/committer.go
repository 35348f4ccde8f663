package app

import (
	"context"
	"database/sql"

	"meal-planner/internal/database"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
)

// SQLCommitter writes the grocery list and the snapshot in one transaction.
type SQLCommitter struct {
	db        *database.DB
	list      *shopping.Repository
	snapshots *planner.SnapshotRepository
}

// NewSQLCommitter creates a committer over repositories sharing db.
func NewSQLCommitter(db *database.DB, list *shopping.Repository, snapshots *planner.SnapshotRepository) *SQLCommitter {
	return &SQLCommitter{db: db, list: list, snapshots: snapshots}
}

func (c *SQLCommitter) Commit(ctx context.Context, week planner.Week, list shopping.GroceryList, snapshot planner.WeekPlan) error {
	return c.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := c.list.WithTx(tx).Set(ctx, list); err != nil {
			return err
		}
		return c.snapshots.WithTx(tx).Save(ctx, week, snapshot)
	})
}
