package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/timesheet"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id, employee_id, job_id, start_at, end_at, hours, units,
	rate_snapshot, approved_in_run_id, source,
	backfilled_at, backfilled_by, created_at, updated_at
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	var snapshotJSON []byte
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.JobID, &t.Start, &t.End, &t.Hours, &t.Units,
		&snapshotJSON, &t.ApprovedInRunID, &t.Source,
		&t.BackfilledAt, &t.BackfilledBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	if len(snapshotJSON) > 0 {
		var snapshot rate.Snapshot
		if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to decode rate snapshot: %w", err)
		}
		t.RateSnapshot = &snapshot
	}
	return t, nil
}

func (r *timesheetRepository) InsertBatch(ctx context.Context, sheets []timesheet.Timesheet) error {
	if len(sheets) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO timesheets (
				id, employee_id, job_id, start_at, end_at, hours, units,
				rate_snapshot, approved_in_run_id, source, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		`
		for _, t := range sheets {
			var snapshotJSON []byte
			if t.RateSnapshot != nil {
				encoded, err := json.Marshal(t.RateSnapshot)
				if err != nil {
					return fmt.Errorf("failed to encode rate snapshot: %w", err)
				}
				snapshotJSON = encoded
			}
			_, err := tx.Exec(ctx, query,
				t.ID, t.EmployeeID, t.JobID, t.Start, t.End, t.Hours, t.Units,
				snapshotJSON, t.ApprovedInRunID, t.Source,
			)
			if err != nil {
				return fmt.Errorf("failed to insert timesheet for employee %s: %w", t.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *timesheetRepository) ListInRange(ctx context.Context, start, end time.Time) ([]timesheet.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE start_at >= $1 AND start_at < $2
		ORDER BY start_at
	`
	return r.list(ctx, query, start, end)
}

func (r *timesheetRepository) ListByRunID(ctx context.Context, runID string) ([]timesheet.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE approved_in_run_id = $1
		ORDER BY employee_id, start_at
	`
	return r.list(ctx, query, runID)
}

func (r *timesheetRepository) list(ctx context.Context, query string, args ...interface{}) ([]timesheet.Timesheet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheets: %w", err)
	}

	return sheets, nil
}

func (r *timesheetRepository) ListGeneratedPairs(ctx context.Context, jobIDs []string) ([]timesheet.GeneratedPair, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT employee_id, job_id
		FROM timesheets
		WHERE source = $1 AND job_id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, timesheet.SourcePayrollPrep, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated timesheet pairs: %w", err)
	}
	defer rows.Close()

	var pairs []timesheet.GeneratedPair
	for rows.Next() {
		var p timesheet.GeneratedPair
		if err := rows.Scan(&p.EmployeeID, &p.JobID); err != nil {
			return nil, fmt.Errorf("failed to scan generated pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generated pairs: %w", err)
	}

	return pairs, nil
}

func (r *timesheetRepository) ApproveInRun(ctx context.Context, runID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// Timesheets already approved into a run are left untouched.
	query := `
		UPDATE timesheets
		SET approved_in_run_id = $1, updated_at = NOW()
		WHERE id = ANY($2) AND approved_in_run_id IS NULL
	`

	tag, err := r.db.Exec(ctx, query, runID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to approve timesheets: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *timesheetRepository) UpdateSnapshots(ctx context.Context, updates []timesheet.SnapshotUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		// The rate_snapshot IS NULL guard makes the batch safe against a
		// concurrent backfill over an overlapping range.
		query := `
			UPDATE timesheets
			SET rate_snapshot = $1, backfilled_at = $2, backfilled_by = NULLIF($3, ''), updated_at = NOW()
			WHERE id = $4 AND rate_snapshot IS NULL
		`
		for _, u := range updates {
			snapshotJSON, err := json.Marshal(u.Snapshot)
			if err != nil {
				return fmt.Errorf("failed to encode rate snapshot: %w", err)
			}
			if _, err := tx.Exec(ctx, query, snapshotJSON, u.BackfilledAt, u.BackfilledBy, u.TimesheetID); err != nil {
				return fmt.Errorf("failed to backfill timesheet %s: %w", u.TimesheetID, err)
			}
		}
		return nil
	})
}
