package job

import (
	"context"
	"time"
)

type Repository interface {
	// ListCompletedInRange returns completed jobs with service_date in
	// [start, end).
	ListCompletedInRange(ctx context.Context, start, end time.Time) ([]Job, error)
}
