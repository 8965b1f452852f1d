package rate

import (
	"context"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
)

// Resolver finds the pay rate in force for an employee at a given instant.
type Resolver interface {
	// Resolve returns the effective rate snapshot, or nil when the employee
	// has no usable rate record at or before asOf. A nil snapshot is not an
	// error; callers classify it (missing-rate entry, skip, ...).
	Resolve(ctx context.Context, employeeID string, asOf time.Time) (*rate.Snapshot, error)
}

type ResolverImpl struct {
	rateRepo rate.Repository
}

func NewResolver(rateRepo rate.Repository) Resolver {
	return &ResolverImpl{rateRepo: rateRepo}
}

func (s *ResolverImpl) Resolve(ctx context.Context, employeeID string, asOf time.Time) (*rate.Snapshot, error) {
	if employeeID == "" {
		return nil, rate.ErrEmployeeIDRequired
	}

	records, err := s.rateRepo.ListForEmployeeUpTo(ctx, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Records arrive ordered by effective_date ascending; the effective one
	// is the last. Equal effective dates have no tiebreaker, so the last in
	// store order wins.
	effective := records[len(records)-1]

	snapshot, ok := rate.Normalize(effective)
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}
