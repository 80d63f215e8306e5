package attendance

import (
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
)

// SaveAttendanceRequest is a manual entry for one employee and one date.
// Status may force on-leave or absent; otherwise it is derived from the punch.
type SaveAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=on-leave absent"`
	Notes      string `json:"notes,omitempty" validate:"max=500"`
}

func (r *SaveAttendanceRequest) Validate() error {
	errs := validator.Struct(r)

	if !timeutil.IsBlank(r.CheckIn) && !validator.IsValidClock(r.CheckIn) {
		errs.Add("check_in", "must be in HH:MM format")
	}
	if !timeutil.IsBlank(r.CheckOut) && !validator.IsValidClock(r.CheckOut) {
		errs.Add("check_out", "must be in HH:MM format")
	}

	return errs.OrNil()
}

// Normalize maps placeholder punches to empty strings.
func (r *SaveAttendanceRequest) Normalize() {
	if timeutil.IsBlank(r.CheckIn) {
		r.CheckIn = ""
	}
	if timeutil.IsBlank(r.CheckOut) {
		r.CheckOut = ""
	}
}

type AttendanceFilter struct {
	EmployeeID   string
	Month        string
	From         string
	To           string
	Status       string
	BranchID     string
	DepartmentID string
}

// DayFilter selects the rows of the daily sheet. Status narrows the rows
// but not the stats.
type DayFilter struct {
	Date         string
	BranchID     string
	DepartmentID string
	Status       string
	Search       string
}

type AttendanceResponse struct {
	Attendance
	ExpectedCheckIn  string `json:"expected_check_in"`
	ExpectedCheckOut string `json:"expected_check_out"`
	WorkingDay       bool   `json:"working_day"`
}

type DayStats struct {
	Total     int `json:"total"`
	Present   int `json:"present"`
	Late      int `json:"late"`
	Absent    int `json:"absent"`
	OnLeave   int `json:"on_leave"`
	EarlyExit int `json:"early_exit"`
}

type DayResponse struct {
	Date  string   `json:"date"`
	Rows  []View   `json:"rows"`
	Stats DayStats `json:"stats"`
}
