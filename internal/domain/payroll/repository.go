package payroll

import "context"

type Repository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id string) (Run, error)

	// UpdateTotals writes recomputed totals onto the run only if its stored
	// version still equals expectedVersion, bumping the version on success.
	// Returns ErrRunConflict when the guard fails and ErrRunNotFound when
	// the run does not exist.
	UpdateTotals(ctx context.Context, id string, totals Totals, expectedVersion int64, updatedBy string) (Run, error)
}
