package hierarchy

import (
	"strings"

	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
)

// SaveBranchRequest creates a branch, or updates one when ID is set.
type SaveBranchRequest struct {
	ID        string `json:"-"`
	Name      string `json:"name" validate:"required,max=100"`
	Location  string `json:"location" validate:"max=200"`
	ManagerID string `json:"manager_id"`
}

func (r *SaveBranchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).OrNil()
}

// SaveDepartmentRequest creates a department in a branch, or updates one when ID is set.
type SaveDepartmentRequest struct {
	BranchID     string `json:"-"`
	ID           string `json:"-"`
	Name         string `json:"name" validate:"required,max=100"`
	SupervisorID string `json:"supervisor_id"`
}

func (r *SaveDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	errs := validator.Struct(r)
	if validator.IsEmpty(r.BranchID) {
		errs.Add("branch_id", "is required")
	}
	return errs.OrNil()
}

type PositionRequest struct {
	BranchID     string `json:"-"`
	DepartmentID string `json:"-"`
	Name         string `json:"name" validate:"required,max=100"`
}

func (r *PositionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	errs := validator.Struct(r)
	if validator.IsEmpty(r.BranchID) {
		errs.Add("branch_id", "is required")
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs.Add("department_id", "is required")
	}
	return errs.OrNil()
}

// BranchResponse adds live head counts to a stored branch.
type BranchResponse struct {
	Branch
	EmployeeCount int            `json:"employee_count"`
	Headcount     map[string]int `json:"department_employee_count"`
}
