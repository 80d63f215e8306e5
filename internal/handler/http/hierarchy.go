package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/hierarchy"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

// HierarchyHandler edits branches with their departments and positions.
type HierarchyHandler interface {
	ListBranches(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	SaveBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	SaveDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	AddPosition(w http.ResponseWriter, r *http.Request)
	RemovePosition(w http.ResponseWriter, r *http.Request)
}

type hierarchyHandlerImpl struct {
	hierarchyService hierarchy.HierarchyService
}

func NewHierarchyHandler(hierarchyService hierarchy.HierarchyService) HierarchyHandler {
	return &hierarchyHandlerImpl{hierarchyService: hierarchyService}
}

func (h *hierarchyHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	result, err := h.hierarchyService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, response.Meta{})
}

func (h *hierarchyHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	result, err := h.hierarchyService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveBranch serves both POST / and PUT /{id}.
func (h *hierarchyHandlerImpl) SaveBranch(w http.ResponseWriter, r *http.Request) {
	var req hierarchy.SaveBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.hierarchyService.SaveBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ID == "" {
		response.Created(w, "Branch created", result)
		return
	}
	response.SuccessWithMessage(w, "Branch updated", result)
}

func (h *hierarchyHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.hierarchyService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted", nil)
}

func (h *hierarchyHandlerImpl) SaveDepartment(w http.ResponseWriter, r *http.Request) {
	var req hierarchy.SaveDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = chi.URLParam(r, "id")
	req.ID = chi.URLParam(r, "deptID")

	result, err := h.hierarchyService.SaveDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ID == "" {
		response.Created(w, "Department created", result)
		return
	}
	response.SuccessWithMessage(w, "Department updated", result)
}

func (h *hierarchyHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	result, err := h.hierarchyService.DeleteDepartment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "deptID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted", result)
}

func (h *hierarchyHandlerImpl) AddPosition(w http.ResponseWriter, r *http.Request) {
	var req hierarchy.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = chi.URLParam(r, "id")
	req.DepartmentID = chi.URLParam(r, "deptID")

	result, err := h.hierarchyService.AddPosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position added", result)
}

func (h *hierarchyHandlerImpl) RemovePosition(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		response.BadRequest(w, "Invalid position name", nil)
		return
	}

	result, err := h.hierarchyService.RemovePosition(r.Context(), hierarchy.PositionRequest{
		BranchID:     chi.URLParam(r, "id"),
		DepartmentID: chi.URLParam(r, "deptID"),
		Name:         name,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position removed", result)
}
