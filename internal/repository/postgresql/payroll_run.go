package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/payroll"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.Repository {
	return &payrollRunRepository{db: db}
}

const runColumns = `
	id, period_start, period_end, status, total_hours, total_earnings,
	by_employee, version, created_at, updated_at, updated_by
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	var byEmployeeJSON []byte
	err := row.Scan(
		&run.ID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&run.TotalHours, &run.TotalEarnings,
		&byEmployeeJSON, &run.Version, &run.CreatedAt, &run.UpdatedAt, &run.UpdatedBy,
	)
	if err != nil {
		return payroll.Run{}, err
	}

	run.ByEmployee = map[string]payroll.EmployeeTotals{}
	if len(byEmployeeJSON) > 0 {
		if err := json.Unmarshal(byEmployeeJSON, &run.ByEmployee); err != nil {
			return payroll.Run{}, fmt.Errorf("failed to decode employee totals: %w", err)
		}
	}
	return run, nil
}

func (r *payrollRunRepository) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	byEmployeeJSON, err := json.Marshal(run.ByEmployee)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to encode employee totals: %w", err)
	}

	query := `
		INSERT INTO payroll_runs (
			id, period_start, period_end, status, total_hours, total_earnings,
			by_employee, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + runColumns

	created, err := scanRun(r.db.QueryRow(ctx, query,
		run.ID, run.PeriodStart, run.PeriodEnd, run.Status,
		run.TotalHours, run.TotalEarnings, byEmployeeJSON, run.Version,
	))
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRunRepository) GetByID(ctx context.Context, id string) (payroll.Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE id = $1
	`

	run, err := scanRun(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepository) UpdateTotals(ctx context.Context, id string, totals payroll.Totals, expectedVersion int64, updatedBy string) (payroll.Run, error) {
	byEmployeeJSON, err := json.Marshal(totals.ByEmployee)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to encode employee totals: %w", err)
	}

	// Compare-and-swap on version: a concurrent recalculation that already
	// committed makes this a no-op, reported as a conflict.
	query := `
		UPDATE payroll_runs
		SET total_hours = $1, total_earnings = $2, by_employee = $3,
			version = version + 1, updated_at = NOW(), updated_by = NULLIF($4, '')
		WHERE id = $5 AND version = $6
		RETURNING ` + runColumns

	run, err := scanRun(r.db.QueryRow(ctx, query,
		totals.TotalHours, totals.TotalEarnings, byEmployeeJSON,
		updatedBy, id, expectedVersion,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing run from a stale version.
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, payroll.ErrRunNotFound) {
				return payroll.Run{}, payroll.ErrRunNotFound
			}
			return payroll.Run{}, payroll.ErrRunConflict
		}
		return payroll.Run{}, fmt.Errorf("failed to update payroll run totals: %w", err)
	}

	return run, nil
}
