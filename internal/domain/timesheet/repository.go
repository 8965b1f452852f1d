package timesheet

import (
	"context"
	"time"
)

type Repository interface {
	// InsertBatch persists the timesheets as a single atomic write set.
	// Either every row commits or none does.
	InsertBatch(ctx context.Context, sheets []Timesheet) error

	// ListInRange returns timesheets with start in [start, end).
	ListInRange(ctx context.Context, start, end time.Time) ([]Timesheet, error)

	// ListByRunID returns timesheets approved into the run, ordered by
	// (employee_id, start) for deterministic accumulation.
	ListByRunID(ctx context.Context, runID string) ([]Timesheet, error)

	// ListGeneratedPairs returns the (employee, job) pairs among jobIDs that
	// already have a payroll_prep timesheet.
	ListGeneratedPairs(ctx context.Context, jobIDs []string) ([]GeneratedPair, error)

	// ApproveInRun assigns the run to the given timesheets, skipping any
	// that are already approved into a run, and returns the affected count.
	ApproveInRun(ctx context.Context, runID string, ids []string) (int64, error)

	// UpdateSnapshots attaches rate snapshots and backfill audit fields as a
	// single atomic batch.
	UpdateSnapshots(ctx context.Context, updates []SnapshotUpdate) error
}
