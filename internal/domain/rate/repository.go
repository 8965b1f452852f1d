package rate

import (
	"context"
	"time"
)

type Repository interface {
	// ListForEmployeeUpTo returns every rate record for the employee with
	// effective_date <= asOf, ordered by effective_date ascending. Records
	// sharing an effective_date have no secondary ordering key; their
	// relative order is whatever the store returns.
	ListForEmployeeUpTo(ctx context.Context, employeeID string, asOf time.Time) ([]Record, error)
}
