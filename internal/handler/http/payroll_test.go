package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/payroll"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayrollService struct {
	scanResp    payroll.ScanResponse
	recalcResp  payroll.RecalcResponse
	recalcErr   error
	getRunResp  payroll.RunResponse
	getRunErr   error
	backfillRsp payroll.BackfillResponse
}

func (s *stubPayrollService) CreateRun(_ context.Context, req payroll.CreateRunRequest) (payroll.CreateRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CreateRunResponse{}, err
	}
	return payroll.CreateRunResponse{ID: "run-1", Success: true}, nil
}

func (s *stubPayrollService) GetRun(_ context.Context, _ string) (payroll.RunResponse, error) {
	return s.getRunResp, s.getRunErr
}

func (s *stubPayrollService) Scan(_ context.Context, _ payroll.ScanRequest) (payroll.ScanResponse, error) {
	return s.scanResp, nil
}

func (s *stubPayrollService) Generate(_ context.Context, _ payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	return payroll.GenerateResponse{Success: true, Created: 2}, nil
}

func (s *stubPayrollService) Approve(_ context.Context, _ payroll.ApproveRequest) (payroll.ApproveResponse, error) {
	return payroll.ApproveResponse{Count: 3}, nil
}

func (s *stubPayrollService) Recalc(_ context.Context, _ payroll.RecalcRequest) (payroll.RecalcResponse, error) {
	return s.recalcResp, s.recalcErr
}

func (s *stubPayrollService) Backfill(_ context.Context, _ payroll.BackfillRequest) (payroll.BackfillResponse, error) {
	return s.backfillRsp, nil
}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestScan_WireFieldNames(t *testing.T) {
	locationID := "loc-1"
	svc := &stubPayrollService{scanResp: payroll.ScanResponse{
		PeriodID:       "20240101-20240115",
		TimesheetCount: 1,
		TotalHours:     8,
		TotalEarnings:  160.00,
		MissingRates: []payroll.MissingRate{
			{EmployeeID: "emp-2", JobID: "job-2", LocationID: &locationID},
		},
		Timesheets: []payroll.DraftTimesheet{
			{
				EmployeeID:   "emp-1",
				JobID:        "job-1",
				ServiceDate:  1704412800000,
				Hours:        8,
				RateSnapshot: rate.Snapshot{Type: rate.TypeHourly, Amount: 20},
				Earnings:     160.00,
			},
		},
	}}
	handler := NewPayrollHandler(svc)

	rec := post(t, handler.Scan, `{"periodStart":1704067200000,"periodEnd":1705276800000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	for _, key := range []string{"periodId", "timesheetCount", "totalHours", "totalEarnings", "missingRates", "timesheets"} {
		assert.Contains(t, body, key)
	}

	sheets := body["timesheets"].([]any)
	draft := sheets[0].(map[string]any)
	for _, key := range []string{"employeeId", "jobId", "serviceDate", "hours", "rateSnapshot", "earnings"} {
		assert.Contains(t, draft, key)
	}
	snapshot := draft["rateSnapshot"].(map[string]any)
	assert.Equal(t, "hourly", snapshot["type"])
	assert.Equal(t, 20.0, snapshot["amount"])

	missing := body["missingRates"].([]any)[0].(map[string]any)
	assert.Equal(t, "emp-2", missing["employeeId"])
	assert.Equal(t, "loc-1", missing["locationId"])
}

func TestRecalc_WireFieldNames(t *testing.T) {
	hourly := 20.0
	svc := &stubPayrollService{recalcResp: payroll.RecalcResponse{
		Success: true,
		Totals: payroll.Totals{
			ByEmployee: map[string]payroll.EmployeeTotals{
				"emp-1": {Hours: 12, Earnings: 240.00, HourlyRate: &hourly},
			},
			TotalHours:    12,
			TotalEarnings: 240.00,
		},
	}}
	handler := NewPayrollHandler(svc)

	rec := post(t, handler.RecalcRun, `{"runId":"run-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	totals := body["totals"].(map[string]any)
	assert.Equal(t, 12.0, totals["totalHours"])
	assert.Equal(t, 240.0, totals["totalEarnings"])

	employee := totals["byEmployee"].(map[string]any)["emp-1"].(map[string]any)
	assert.Equal(t, 12.0, employee["hours"])
	assert.Equal(t, 240.0, employee["earnings"])
	assert.Equal(t, 20.0, employee["hourlyRate"])
}

func TestBackfill_WireFieldNames(t *testing.T) {
	svc := &stubPayrollService{backfillRsp: payroll.BackfillResponse{
		Success: true, Updated: 3, Skipped: 2, Errors: 1, Total: 6,
	}}
	handler := NewPayrollHandler(svc)

	rec := post(t, handler.Backfill, `{"startDate":1704067200000,"endDate":1705276800000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, 3.0, body["updated"])
	assert.Equal(t, 2.0, body["skipped"])
	assert.Equal(t, 1.0, body["errors"])
	assert.Equal(t, 6.0, body["total"])
}

func TestCreateRun_MalformedBody(t *testing.T) {
	handler := NewPayrollHandler(&stubPayrollService{})

	rec := post(t, handler.CreateRun, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	errDetail := body["error"].(map[string]any)
	assert.Equal(t, "invalid-argument", errDetail["code"])
}

func TestCreateRun_ValidationDetails(t *testing.T) {
	handler := NewPayrollHandler(&stubPayrollService{})

	rec := post(t, handler.CreateRun, `{"periodStart":1705276800000,"periodEnd":1704067200000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	errDetail := body["error"].(map[string]any)
	assert.Equal(t, "invalid-argument", errDetail["code"])
	details := errDetail["details"].(map[string]any)
	assert.Contains(t, details, "periodEnd")
}

func TestGetRun_NotFound(t *testing.T) {
	handler := NewPayrollHandler(&stubPayrollService{getRunErr: payroll.ErrRunNotFound})

	r := chi.NewRouter()
	r.Get("/runs/{id}", handler.GetRun)

	req := httptest.NewRequest(http.MethodGet, "/runs/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	errDetail := body["error"].(map[string]any)
	assert.Equal(t, "not-found", errDetail["code"])
}

func TestRecalc_VersionConflict(t *testing.T) {
	handler := NewPayrollHandler(&stubPayrollService{recalcErr: payroll.ErrRunConflict})

	rec := post(t, handler.RecalcRun, `{"runId":"run-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	errDetail := body["error"].(map[string]any)
	assert.Equal(t, "conflict", errDetail["code"])
}
