package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/job"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/payroll"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/timesheet"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/money"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/validator"
	rateService "github.com/clevelandclean/payroll-backend-go/internal/service/rate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	runRepo       payroll.Repository
	timesheetRepo timesheet.Repository
	jobRepo       job.Repository
	resolver      rateService.Resolver
}

func NewPayrollService(
	runRepo payroll.Repository,
	timesheetRepo timesheet.Repository,
	jobRepo job.Repository,
	resolver rateService.Resolver,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		runRepo:       runRepo,
		timesheetRepo: timesheetRepo,
		jobRepo:       jobRepo,
		resolver:      resolver,
	}
}

// actorFromContext returns the caller's user id from the verified token.
// Best effort: audit fields stay empty when no identity is attached (tests,
// ops scripts).
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// periodID derives a stable identifier from the period bounds so repeated
// scans of the same period agree.
func periodID(start, end time.Time) string {
	return start.UTC().Format("20060102") + "-" + end.UTC().Format("20060102")
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.CreateRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CreateRunResponse{}, err
	}

	run := payroll.Run{
		ID:          uuid.NewString(),
		PeriodStart: validator.EpochMillis(req.PeriodStart),
		PeriodEnd:   validator.EpochMillis(req.PeriodEnd),
		Status:      payroll.StatusDraft,
		ByEmployee:  map[string]payroll.EmployeeTotals{},
		Version:     1,
	}

	created, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return payroll.CreateRunResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return payroll.CreateRunResponse{ID: created.ID, Success: true}, nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	if validator.IsEmpty(id) {
		return payroll.RunResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "is required"},
		}
	}

	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return mapToRunResponse(run), nil
}

// ========== SCAN ==========

// scanPeriod is the shared read-only pass over the service history. Every
// assignment with positive duration or units lands in exactly one bucket:
// drafts when a rate resolves for the job's service instant, missingRates
// otherwise.
func (s *PayrollServiceImpl) scanPeriod(ctx context.Context, start, end time.Time) (drafts []payroll.DraftTimesheet, missing []payroll.MissingRate, totalJobs, totalAssignments int, err error) {
	jobs, err := s.jobRepo.ListCompletedInRange(ctx, start, end)
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("failed to scan service history: %w", err)
	}

	cache := rateService.NewCache(s.resolver)
	totalJobs = len(jobs)

	for _, j := range jobs {
		if j.DurationHours <= 0 && j.Units <= 0 {
			continue
		}

		for _, employeeID := range j.AssignedEmployees {
			if employeeID == "" {
				continue
			}
			totalAssignments++

			snapshot, rerr := cache.Resolve(ctx, employeeID, j.ServiceDate)
			if rerr != nil {
				return nil, nil, 0, 0, fmt.Errorf("failed to resolve rate for employee %s: %w", employeeID, rerr)
			}
			if snapshot == nil {
				missing = append(missing, payroll.MissingRate{
					EmployeeID: employeeID,
					JobID:      j.ID,
					LocationID: j.LocationID,
				})
				continue
			}

			draft := payroll.DraftTimesheet{
				EmployeeID:   employeeID,
				JobID:        j.ID,
				ServiceDate:  j.ServiceDate.UnixMilli(),
				RateSnapshot: *snapshot,
			}
			switch snapshot.Type {
			case rate.TypePerVisit:
				draft.Units = j.Units
				if draft.Units <= 0 {
					draft.Units = 1
				}
				draft.Earnings = money.Earnings(draft.Units, snapshot.Amount)
			case rate.TypeHourly:
				draft.Hours = j.DurationHours
				draft.Earnings = money.Earnings(draft.Hours, snapshot.Amount)
			default:
				// Monthly assignments carry no per-job earnings; they are
				// surfaced in the preview and excluded from generation.
				draft.Hours = j.DurationHours
			}

			drafts = append(drafts, draft)
		}
	}

	return drafts, missing, totalJobs, totalAssignments, nil
}

func (s *PayrollServiceImpl) Scan(ctx context.Context, req payroll.ScanRequest) (payroll.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ScanResponse{}, err
	}

	start := validator.EpochMillis(req.PeriodStart)
	end := validator.EpochMillis(req.PeriodEnd)

	drafts, missing, _, _, err := s.scanPeriod(ctx, start, end)
	if err != nil {
		return payroll.ScanResponse{}, err
	}

	totalHours := 0.0
	totalEarnings := 0.0
	for _, d := range drafts {
		totalHours += d.Hours
		totalEarnings = money.AddRound2(totalEarnings, d.Earnings)
	}

	if drafts == nil {
		drafts = []payroll.DraftTimesheet{}
	}
	if missing == nil {
		missing = []payroll.MissingRate{}
	}

	return payroll.ScanResponse{
		PeriodID:       periodID(start, end),
		TimesheetCount: len(drafts),
		TotalHours:     totalHours,
		TotalEarnings:  totalEarnings,
		MissingRates:   missing,
		Timesheets:     drafts,
	}, nil
}

// ========== GENERATE ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	start := validator.EpochMillis(req.PeriodStart)
	end := validator.EpochMillis(req.PeriodEnd)

	drafts, _, _, _, err := s.scanPeriod(ctx, start, end)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	// Monthly-rate assignments cannot be converted to a discrete timesheet;
	// they are filtered here, before the batch is built, never silently
	// dropped inside it.
	eligible := make([]payroll.DraftTimesheet, 0, len(drafts))
	jobIDs := make([]string, 0, len(drafts))
	for _, d := range drafts {
		if d.RateSnapshot.Type == rate.TypeMonthly {
			continue
		}
		eligible = append(eligible, d)
		jobIDs = append(jobIDs, d.JobID)
	}

	if len(eligible) == 0 {
		return payroll.GenerateResponse{Success: true, Created: 0}, nil
	}

	// Re-running scan-generate over an overlapping period must not create
	// duplicates: generation is keyed by (employee, job) among timesheets
	// already generated by payroll prep.
	pairs, err := s.timesheetRepo.ListGeneratedPairs(ctx, jobIDs)
	if err != nil {
		return payroll.GenerateResponse{}, fmt.Errorf("failed to check existing timesheets: %w", err)
	}
	existing := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		existing[p.EmployeeID+"|"+p.JobID] = struct{}{}
	}

	now := time.Now().UTC()
	sheets := make([]timesheet.Timesheet, 0, len(eligible))
	for _, d := range eligible {
		if _, ok := existing[d.EmployeeID+"|"+d.JobID]; ok {
			continue
		}
		snapshot := d.RateSnapshot
		jobID := d.JobID
		sheets = append(sheets, timesheet.Timesheet{
			ID:           uuid.NewString(),
			EmployeeID:   d.EmployeeID,
			JobID:        &jobID,
			Start:        time.UnixMilli(d.ServiceDate).UTC(),
			Hours:        d.Hours,
			Units:        d.Units,
			RateSnapshot: &snapshot,
			Source:       timesheet.SourcePayrollPrep,
			CreatedAt:    now,
		})
	}

	if len(sheets) > 0 {
		// Single atomic write set: either every timesheet commits or none.
		if err := s.timesheetRepo.InsertBatch(ctx, sheets); err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to persist generated timesheets: %w", err)
		}
	}

	return payroll.GenerateResponse{Success: true, Created: len(sheets)}, nil
}

// ========== APPROVE ==========

func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApproveRequest) (payroll.ApproveResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ApproveResponse{}, err
	}

	if _, err := s.runRepo.GetByID(ctx, req.RunID); err != nil {
		return payroll.ApproveResponse{}, err
	}

	count, err := s.timesheetRepo.ApproveInRun(ctx, req.RunID, req.TimesheetIDs)
	if err != nil {
		return payroll.ApproveResponse{}, fmt.Errorf("failed to approve timesheets: %w", err)
	}

	return payroll.ApproveResponse{Count: count}, nil
}

// ========== RECALC ==========

func (s *PayrollServiceImpl) Recalc(ctx context.Context, req payroll.RecalcRequest) (payroll.RecalcResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecalcResponse{}, err
	}

	run, err := s.runRepo.GetByID(ctx, req.RunID)
	if err != nil {
		return payroll.RecalcResponse{}, err
	}

	// Ordered by (employee_id, start) so accumulation order, and therefore
	// the step-rounded totals, are deterministic.
	sheets, err := s.timesheetRepo.ListByRunID(ctx, run.ID)
	if err != nil {
		return payroll.RecalcResponse{}, fmt.Errorf("failed to load run timesheets: %w", err)
	}

	cache := rateService.NewCache(s.resolver)
	totals := payroll.Totals{ByEmployee: map[string]payroll.EmployeeTotals{}}

	for _, sheet := range sheets {
		hours := sheet.Hours
		if hours <= 0 {
			// A timesheet without positive hours contributes nothing.
			continue
		}

		var rateAmount float64
		var hourlyRate *float64
		if sheet.RateSnapshot != nil {
			rateAmount = sheet.RateSnapshot.Amount
			if sheet.RateSnapshot.Type == rate.TypeHourly {
				amount := sheet.RateSnapshot.Amount
				hourlyRate = &amount
			}
		} else {
			snapshot, rerr := cache.Resolve(ctx, sheet.EmployeeID, sheet.Start)
			if rerr != nil {
				return payroll.RecalcResponse{}, fmt.Errorf("failed to resolve rate for employee %s: %w", sheet.EmployeeID, rerr)
			}
			if snapshot == nil {
				// No snapshot and no resolvable live rate: excluded from
				// aggregation entirely.
				continue
			}
			rateAmount = snapshot.Amount
			if snapshot.Type == rate.TypeHourly {
				amount := snapshot.Amount
				hourlyRate = &amount
			}
		}

		earnings := money.Earnings(hours, rateAmount)

		et := totals.ByEmployee[sheet.EmployeeID]
		et.Hours += hours
		et.Earnings = money.AddRound2(et.Earnings, earnings)
		if hourlyRate != nil {
			et.HourlyRate = hourlyRate
		}
		totals.ByEmployee[sheet.EmployeeID] = et

		totals.TotalHours += hours
		totals.TotalEarnings = money.AddRound2(totals.TotalEarnings, earnings)
	}

	if _, err := s.runRepo.UpdateTotals(ctx, run.ID, totals, run.Version, actorFromContext(ctx)); err != nil {
		return payroll.RecalcResponse{}, err
	}

	return payroll.RecalcResponse{Success: true, Totals: totals}, nil
}

// ========== BACKFILL ==========

func (s *PayrollServiceImpl) Backfill(ctx context.Context, req payroll.BackfillRequest) (payroll.BackfillResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BackfillResponse{}, err
	}

	start := validator.EpochMillis(req.StartDate)
	end := validator.EpochMillis(req.EndDate)

	sheets, err := s.timesheetRepo.ListInRange(ctx, start, end)
	if err != nil {
		return payroll.BackfillResponse{}, fmt.Errorf("failed to load timesheets: %w", err)
	}

	cache := rateService.NewCache(s.resolver)
	actor := actorFromContext(ctx)
	now := time.Now().UTC()

	resp := payroll.BackfillResponse{Success: true, Total: len(sheets)}
	var updates []timesheet.SnapshotUpdate

	for _, sheet := range sheets {
		// An existing snapshot is never overwritten, even if a different
		// rate would resolve today.
		if sheet.RateSnapshot != nil {
			resp.Skipped++
			continue
		}

		snapshot, rerr := cache.Resolve(ctx, sheet.EmployeeID, sheet.Start)
		if rerr != nil {
			// Unlike the rest of the pipeline, backfill tolerates
			// per-record failures and keeps going.
			resp.Errors++
			continue
		}
		if snapshot == nil {
			resp.Skipped++
			continue
		}

		updates = append(updates, timesheet.SnapshotUpdate{
			TimesheetID:  sheet.ID,
			Snapshot:     *snapshot,
			BackfilledAt: now,
			BackfilledBy: actor,
		})
		resp.Updated++
	}

	if len(updates) > 0 {
		if err := s.timesheetRepo.UpdateSnapshots(ctx, updates); err != nil {
			return payroll.BackfillResponse{}, fmt.Errorf("failed to commit backfill batch: %w", err)
		}
	}

	return resp, nil
}

// ========== HELPERS ==========

func mapToRunResponse(run payroll.Run) payroll.RunResponse {
	byEmployee := run.ByEmployee
	if byEmployee == nil {
		byEmployee = map[string]payroll.EmployeeTotals{}
	}

	return payroll.RunResponse{
		ID:            run.ID,
		PeriodStart:   run.PeriodStart.UnixMilli(),
		PeriodEnd:     run.PeriodEnd.UnixMilli(),
		Status:        string(run.Status),
		TotalHours:    run.TotalHours,
		TotalEarnings: run.TotalEarnings,
		ByEmployee:    byEmployee,
		Version:       run.Version,
		UpdatedBy:     run.UpdatedBy,
	}
}
