package timesheet

import (
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
)

// Source enum
type Source string

const (
	SourceManual      Source = "manual"
	SourceClockEvent  Source = "clock_event"
	SourcePayrollPrep Source = "payroll_prep"
)

// Timesheet is one employee's worked unit (hours or visit units), optionally
// tied to a service job. A timesheet enters run aggregation once it is
// approved into a run; one with neither a rate snapshot nor a resolvable
// live rate contributes nothing and is flagged missing instead.
type Timesheet struct {
	ID              string
	EmployeeID      string
	JobID           *string
	Start           time.Time
	End             *time.Time
	Hours           float64
	Units           float64
	RateSnapshot    *rate.Snapshot
	ApprovedInRunID *string
	Source          Source
	BackfilledAt    *time.Time
	BackfilledBy    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GeneratedPair identifies a payroll_prep timesheet by its generation key.
// Generation skips a draft whose pair already exists so that re-running
// scan-generate over an overlapping period cannot double-create timesheets.
type GeneratedPair struct {
	EmployeeID string
	JobID      string
}

// SnapshotUpdate is one backfill write: a snapshot to attach to a timesheet
// that has none, with its audit fields.
type SnapshotUpdate struct {
	TimesheetID  string
	Snapshot     rate.Snapshot
	BackfilledAt time.Time
	BackfilledBy string
}
