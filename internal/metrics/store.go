package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meal-planner/internal/metrics/metrics_db"
)

// Import outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ImportMetric records the outcome of a single grocery list import.
type ImportMetric struct {
	Week      string
	Status    string
	Added     int
	Updated   int
	Removed   int
	Latency   time.Duration
	Timestamp time.Time
}

// Store handles persistence of import metrics to SQLite.
type Store struct {
	queries   *metrics_db.Queries
	db        *sql.DB
	collector *Collector
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metrics_db.New(db),
		db:      db,
	}
}

// WithCollector makes the store also export every recorded metric to c.
func (s *Store) WithCollector(c *Collector) *Store {
	s.collector = c
	return s
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ImportMetric) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = StatusSuccess
	}

	if s.collector != nil {
		s.collector.Observe(m)
	}

	err := s.queries.InsertImportMetric(ctx, metrics_db.InsertImportMetricParams{
		Week:         m.Week,
		Status:       m.Status,
		AddedCount:   int64(m.Added),
		UpdatedCount: int64(m.Updated),
		RemovedCount: int64(m.Removed),
		LatencyMs:    m.Latency.Milliseconds(),
		Timestamp:    m.Timestamp.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert import metric: %w", err)
	}
	return nil
}

// Recent returns the latest imports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]ImportMetric, error) {
	rows, err := s.queries.ListRecentImportMetrics(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list import metrics: %w", err)
	}

	out := make([]ImportMetric, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// DailyImports represents import totals for a single day.
type DailyImports struct {
	Date     string
	Imports  int
	Failures int
	Added    int
	Updated  int
	Removed  int
}

// GetDailyImports retrieves per-day totals for the last N days, oldest first.
func (s *Store) GetDailyImports(ctx context.Context, days int) ([]DailyImports, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.ListImportMetricsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list import metrics: %w", err)
	}

	var results []DailyImports
	for _, r := range rows {
		day := r.Timestamp.UTC().Format("2006-01-02")
		if len(results) == 0 || results[len(results)-1].Date != day {
			results = append(results, DailyImports{Date: day})
		}
		u := &results[len(results)-1]
		u.Imports++
		if r.Status == StatusFailed {
			u.Failures++
		}
		u.Added += int(r.AddedCount)
		u.Updated += int(r.UpdatedCount)
		u.Removed += int(r.RemovedCount)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	n, err := s.queries.CleanupImportMetrics(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up import metrics: %w", err)
	}
	return n, nil
}

func fromRow(r metrics_db.ImportMetric) ImportMetric {
	return ImportMetric{
		Week:      r.Week,
		Status:    r.Status,
		Added:     int(r.AddedCount),
		Updated:   int(r.UpdatedCount),
		Removed:   int(r.RemovedCount),
		Latency:   time.Duration(r.LatencyMs) * time.Millisecond,
		Timestamp: r.Timestamp,
	}
}
