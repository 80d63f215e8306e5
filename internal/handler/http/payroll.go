package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Month ledger
	GetMonth(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	PayAll(w http.ResponseWriter, r *http.Request)

	// Entries
	GetEntry(w http.ResponseWriter, r *http.Request)
	PayEntry(w http.ResponseWriter, r *http.Request)
	ReverseEntry(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func monthFilter(r *http.Request) payroll.PayrollFilter {
	q := r.URL.Query()
	return payroll.PayrollFilter{
		Month:        chi.URLParam(r, "month"),
		BranchID:     q.Get("branch_id"),
		DepartmentID: q.Get("department_id"),
		Status:       q.Get("status"),
		Search:       q.Get("search"),
	}
}

// ========== MONTH ==========

func (h *payrollHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	filter := monthFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetMonth(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Report(w, result, len(result.Entries), response.Meta{Month: result.Month})
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Summary(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := monthFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.payrollService.ExportMonth(r.Context(), filter)
	if err != nil {
		slog.Error("Payroll export failed", "month", filter.Month, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

func (h *payrollHandlerImpl) PayAll(w http.ResponseWriter, r *http.Request) {
	filter := monthFilter(r)
	filter.Status = ""
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.PayAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending entries paid", result)
}

// ========== ENTRIES ==========

func (h *payrollHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll entry ID is required", nil)
		return
	}

	result, err := h.payrollService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) PayEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll entry ID is required", nil)
		return
	}

	result, err := h.payrollService.PayEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry paid", result)
}

func (h *payrollHandlerImpl) ReverseEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll entry ID is required", nil)
		return
	}

	result, err := h.payrollService.ReverseEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry moved back to review", result)
}

func (h *payrollHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll entry ID is required", nil)
		return
	}

	var req payroll.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.SetNotes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
