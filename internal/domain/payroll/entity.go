package payroll

import "time"

// Status enum
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// EmployeeTotals is one employee's slice of a run. Earnings are rounded to
// cents after every accumulation step, not only at the end.
type EmployeeTotals struct {
	Hours      float64  `json:"hours"`
	Earnings   float64  `json:"earnings"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
}

// Totals is the recomputed aggregate written onto a run.
type Totals struct {
	ByEmployee    map[string]EmployeeTotals `json:"byEmployee"`
	TotalHours    float64                   `json:"totalHours"`
	TotalEarnings float64                   `json:"totalEarnings"`
}

// Run is one payroll processing cycle for a period. It is created as a draft
// with zero totals, recalculated any number of times while in draft, and
// finalized by an external workflow. Version is a monotonic counter guarding
// the totals write: recalculation is a compare-and-swap, so two concurrent
// recalcs surface as a conflict instead of a silent overwrite.
type Run struct {
	ID            string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Status        Status
	TotalHours    float64
	TotalEarnings float64
	ByEmployee    map[string]EmployeeTotals
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UpdatedBy     *string
}
