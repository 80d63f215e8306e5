package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/evaluation"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

type EvaluationHandler interface {
	// Criteria
	CreateCriteria(w http.ResponseWriter, r *http.Request)
	UpdateCriteria(w http.ResponseWriter, r *http.Request)
	ListCriteria(w http.ResponseWriter, r *http.Request)
	DeleteCriteria(w http.ResponseWriter, r *http.Request)

	// Evaluations
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type evaluationHandlerImpl struct {
	evaluationService evaluation.EvaluationService
}

func NewEvaluationHandler(evaluationService evaluation.EvaluationService) EvaluationHandler {
	return &evaluationHandlerImpl{evaluationService: evaluationService}
}

func evaluationFilter(r *http.Request) evaluation.EvaluationFilter {
	q := r.URL.Query()
	return evaluation.EvaluationFilter{
		EmployeeID:   q.Get("employee_id"),
		BranchID:     q.Get("branch_id"),
		DepartmentID: q.Get("department_id"),
		From:         q.Get("from"),
		To:           q.Get("to"),
	}
}

func (h *evaluationHandlerImpl) CreateCriteria(w http.ResponseWriter, r *http.Request) {
	var req evaluation.CreateCriteriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.evaluationService.CreateCriteria(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Criteria created", result)
}

func (h *evaluationHandlerImpl) UpdateCriteria(w http.ResponseWriter, r *http.Request) {
	var req evaluation.UpdateCriteriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.evaluationService.UpdateCriteria(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Criteria updated", result)
}

func (h *evaluationHandlerImpl) ListCriteria(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.ListCriteria(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, response.Meta{})
}

func (h *evaluationHandlerImpl) DeleteCriteria(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Criteria ID is required", nil)
		return
	}

	if err := h.evaluationService.DeleteCriteria(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Criteria deleted", nil)
}

func (h *evaluationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req evaluation.CreateEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.evaluationService.CreateEvaluation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Evaluation recorded", result)
}

func (h *evaluationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.ListEvaluations(r.Context(), evaluationFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, response.Meta{})
}

// Report averages each employee's evaluations in the filtered range
func (h *evaluationHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.Report(r.Context(), evaluationFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, response.Meta{})
}
