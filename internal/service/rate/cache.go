package rate

import (
	"context"
	"strconv"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
)

// Cache memoizes rate resolution within a single batch operation, keyed by
// employee and second-truncated instant. Many timesheets in one batch share
// the same lookup, so this bounds rate queries to the number of distinct
// employee/time buckets rather than the number of timesheets.
//
// A cache is created per invocation and discarded with it; it is not safe
// for concurrent use and must never be shared across requests.
type Cache struct {
	resolver Resolver
	entries  map[string]*rate.Snapshot
}

func NewCache(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[string]*rate.Snapshot),
	}
}

func (c *Cache) Resolve(ctx context.Context, employeeID string, asOf time.Time) (*rate.Snapshot, error) {
	key := employeeID + "|" + strconv.FormatInt(asOf.Unix(), 10)
	if snapshot, ok := c.entries[key]; ok {
		return snapshot, nil
	}

	snapshot, err := c.resolver.Resolve(ctx, employeeID, asOf)
	if err != nil {
		return nil, err
	}

	// Misses are cached too; an employee with no rate would otherwise be
	// re-queried for every timesheet in the batch.
	c.entries[key] = snapshot
	return snapshot, nil
}
