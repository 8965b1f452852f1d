package payroll

import (
	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/validator"
)

// Wire field names in this file are the compatibility contract with the
// existing portal clients and must not be renamed.

// ========== CREATE RUN ==========

type CreateRunRequest struct {
	PeriodStart int64 `json:"periodStart"` // epoch-ms
	PeriodEnd   int64 `json:"periodEnd"`   // epoch-ms
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodStart <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodStart", Message: "is required"})
	}
	if r.PeriodEnd <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodStart, r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "must be after periodStart"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRunResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// ========== RECALC ==========

type RecalcRequest struct {
	RunID string `json:"runId"`
}

func (r *RecalcRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RunID) {
		errs = append(errs, validator.ValidationError{Field: "runId", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecalcResponse struct {
	Success bool   `json:"success"`
	Totals  Totals `json:"totals"`
}

// ========== SCAN ==========

type ScanRequest struct {
	PeriodStart int64 `json:"periodStart"` // epoch-ms
	PeriodEnd   int64 `json:"periodEnd"`   // epoch-ms
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodStart <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodStart", Message: "is required"})
	}
	if r.PeriodEnd <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodStart, r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "must be after periodStart"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DraftTimesheet is a transient candidate timesheet produced by scanning a
// period. Drafts are never persisted; generation materializes them.
type DraftTimesheet struct {
	EmployeeID   string        `json:"employeeId"`
	JobID        string        `json:"jobId"`
	ServiceDate  int64         `json:"serviceDate"` // epoch-ms
	Hours        float64       `json:"hours,omitempty"`
	Units        float64       `json:"units,omitempty"`
	RateSnapshot rate.Snapshot `json:"rateSnapshot"`
	Earnings     float64       `json:"earnings"`
}

type MissingRate struct {
	EmployeeID string  `json:"employeeId"`
	JobID      string  `json:"jobId"`
	LocationID *string `json:"locationId,omitempty"`
}

type ScanResponse struct {
	PeriodID       string           `json:"periodId"`
	TimesheetCount int              `json:"timesheetCount"`
	TotalHours     float64          `json:"totalHours"`
	TotalEarnings  float64          `json:"totalEarnings"`
	MissingRates   []MissingRate    `json:"missingRates"`
	Timesheets     []DraftTimesheet `json:"timesheets"`
}

// ========== GENERATE ==========

type GenerateRequest struct {
	PeriodStart int64   `json:"periodStart"` // epoch-ms
	PeriodEnd   int64   `json:"periodEnd"`   // epoch-ms
	PeriodID    *string `json:"periodId,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodStart <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodStart", Message: "is required"})
	}
	if r.PeriodEnd <= 0 {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodStart, r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{Field: "periodEnd", Message: "must be after periodStart"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

// ========== APPROVE ==========

type ApproveRequest struct {
	RunID        string   `json:"runId"`
	TimesheetIDs []string `json:"timesheetIds"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RunID) {
		errs = append(errs, validator.ValidationError{Field: "runId", Message: "is required"})
	}
	if len(r.TimesheetIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "timesheetIds", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveResponse struct {
	Count int64 `json:"count"`
}

// ========== BACKFILL ==========

type BackfillRequest struct {
	StartDate int64 `json:"startDate"` // epoch-ms
	EndDate   int64 `json:"endDate"`   // epoch-ms
}

func (r *BackfillRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate <= 0 {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "is required"})
	}
	if r.EndDate <= 0 {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.StartDate, r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "must be after startDate"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BackfillResponse struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
	Skipped int  `json:"skipped"`
	Errors  int  `json:"errors"`
	Total   int  `json:"total"`
}

// ========== RUN READ ==========

type RunResponse struct {
	ID            string                    `json:"id"`
	PeriodStart   int64                     `json:"periodStart"` // epoch-ms
	PeriodEnd     int64                     `json:"periodEnd"`   // epoch-ms
	Status        string                    `json:"status"`
	TotalHours    float64                   `json:"totalHours"`
	TotalEarnings float64                   `json:"totalEarnings"`
	ByEmployee    map[string]EmployeeTotals `json:"byEmployee"`
	Version       int64                     `json:"version"`
	UpdatedBy     *string                   `json:"updatedBy,omitempty"`
}
