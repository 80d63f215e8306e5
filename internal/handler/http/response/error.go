package response

import (
	"errors"
	"net/http"

	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/auth"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/evaluation"
	"github.com/madar-hris/hrms-backend-go/internal/domain/hierarchy"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, employee.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrRoleNotAllowed):
		Forbidden(w, "Role is not allowed to perform this action")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Reward domain errors
	case errors.Is(err, reward.ErrRewardNotFound):
		NotFound(w, "Reward record not found")
	case errors.Is(err, reward.ErrRewardAlreadyCancelled):
		Conflict(w, "Reward record already cancelled")
	case errors.Is(err, reward.ErrAutomaticReadOnly):
		Conflict(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrEntryAlreadyPaid):
		Conflict(w, "Payroll entry already paid")
	case errors.Is(err, payroll.ErrEntryNotPaid):
		Conflict(w, "Payroll entry is not paid")

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAdvanceNotActive):
		Conflict(w, "Advance is not active")

	// Hierarchy domain errors
	case errors.Is(err, hierarchy.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, hierarchy.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, hierarchy.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, hierarchy.ErrPositionExists):
		Conflict(w, err.Error())

	// Evaluation domain errors
	case errors.Is(err, evaluation.ErrCriteriaNotFound):
		NotFound(w, "Evaluation criteria not found")
	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		NotFound(w, "Evaluation not found")

	// Malformed times that slipped past DTO validation
	case errors.Is(err, timeutil.ErrInvalidClock),
		errors.Is(err, timeutil.ErrInvalidDate),
		errors.Is(err, timeutil.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
