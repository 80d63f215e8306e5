package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Day(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Save implements AttendanceHandler.
func (h *attendanceHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.SaveAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := attendance.AttendanceFilter{
		EmployeeID:   q.Get("employee_id"),
		Month:        q.Get("month"),
		From:         q.Get("from"),
		To:           q.Get("to"),
		Status:       q.Get("status"),
		BranchID:     q.Get("branch_id"),
		DepartmentID: q.Get("department_id"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, response.Meta{Month: filter.Month})
}

func dayFilter(r *http.Request) attendance.DayFilter {
	q := r.URL.Query()
	return attendance.DayFilter{
		Date:         q.Get("date"),
		BranchID:     q.Get("branch_id"),
		DepartmentID: q.Get("department_id"),
		Status:       q.Get("status"),
		Search:       q.Get("search"),
	}
}

// Day implements AttendanceHandler.
func (h *attendanceHandlerImpl) Day(w http.ResponseWriter, r *http.Request) {
	filter := dayFilter(r)
	if filter.Date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	result, err := h.attendanceService.GetDay(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Report(w, result, len(result.Rows), response.Meta{Date: result.Date})
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	filter := dayFilter(r)
	if filter.Date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}
	filter.Status = ""

	result, err := h.attendanceService.GetDay(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result.Stats)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}
