package payroll

import "context"

// PayrollService is the payroll computation and reconciliation pipeline.
// Every operation is synchronous, idempotent and safe to re-run; callers
// must already be authorized (the transport layer gates on role flags
// before any of these run).
type PayrollService interface {
	CreateRun(ctx context.Context, req CreateRunRequest) (CreateRunResponse, error)
	GetRun(ctx context.Context, id string) (RunResponse, error)
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Approve(ctx context.Context, req ApproveRequest) (ApproveResponse, error)
	Recalc(ctx context.Context, req RecalcRequest) (RecalcResponse, error)
	Backfill(ctx context.Context, req BackfillRequest) (BackfillResponse, error)
}
