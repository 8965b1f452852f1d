package http

import (
	"encoding/json"
	"net/http"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/payroll"
	"github.com/clevelandclean/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	RecalcRun(w http.ResponseWriter, r *http.Request)
	Scan(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	ApproveTimesheets(w http.ResponseWriter, r *http.Request)
	Backfill(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.InvalidArgument(w, "Run ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *payrollHandlerImpl) RecalcRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Recalc(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *payrollHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req payroll.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *payrollHandlerImpl) ApproveTimesheets(w http.ResponseWriter, r *http.Request) {
	var req payroll.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *payrollHandlerImpl) Backfill(w http.ResponseWriter, r *http.Request) {
	var req payroll.BackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidArgument(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Backfill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
