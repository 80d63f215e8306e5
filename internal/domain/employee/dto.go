package employee

import (
	"fmt"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WorkingDayRequest struct {
	Day       string `json:"day" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	IsOff     bool   `json:"is_off"`
	StartTime string `json:"start_time" validate:"required_if=IsOff false,omitempty,clock"`
	EndTime   string `json:"end_time" validate:"required_if=IsOff false,omitempty,clock"`
}

type CreateEmployeeRequest struct {
	Code         string `json:"code" validate:"required,max=32"`
	Name         string `json:"name" validate:"required,max=150"`
	Password     string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role         string `json:"role" validate:"omitempty,oneof=super-admin branch-manager dept-supervisor employee"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty"`
	BranchID     string `json:"branch_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Position     string `json:"position,omitempty"`
	Level        string `json:"level,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=active inactive on-leave terminated"`
	HireDate     string `json:"hire_date,omitempty" validate:"omitempty,date"`

	Salary decimal.Decimal `json:"salary"`

	CheckInTime  string `json:"check_in_time" validate:"required,clock"`
	CheckOutTime string `json:"check_out_time" validate:"required,clock"`

	GracePeriodMinutes       int             `json:"grace_period_minutes" validate:"gte=0,lte=720"`
	AllowLateEntry           bool            `json:"allow_late_entry"`
	LateFineAmount           decimal.Decimal `json:"late_fine_amount"`
	AllowEarlyExit           bool            `json:"allow_early_exit"`
	EarlyExitGracePeriod     int             `json:"early_exit_grace_period" validate:"gte=0,lte=720"`
	EarlyExitFineAmount      decimal.Decimal `json:"early_exit_fine_amount"`
	AllowOvertime            bool            `json:"allow_overtime"`
	AutoCheckOutEnabled      bool            `json:"auto_check_out_enabled"`
	AutoCheckOutAfterMinutes int             `json:"auto_check_out_after_minutes" validate:"gte=0"`

	WorkingDays []WorkingDayRequest `json:"working_days" validate:"max=7,dive"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Salary.IsNegative() {
		errs.Add("salary", "must be non-negative")
	}
	if r.LateFineAmount.IsNegative() {
		errs.Add("late_fine_amount", "must be non-negative")
	}
	if r.EarlyExitFineAmount.IsNegative() {
		errs.Add("early_exit_fine_amount", "must be non-negative")
	}

	seen := make(map[string]bool, len(r.WorkingDays))
	for i, wd := range r.WorkingDays {
		if seen[wd.Day] {
			errs.Add(fmt.Sprintf("working_days[%d].day", i), ErrDuplicateWeekday.Error())
		}
		seen[wd.Day] = true
	}

	return errs.OrNil()
}

// ToWorkingDays converts the request rows; nil when none were given.
func (r *CreateEmployeeRequest) ToWorkingDays() []WorkingDay {
	if len(r.WorkingDays) == 0 {
		return nil
	}
	days := make([]WorkingDay, 0, len(r.WorkingDays))
	for _, wd := range r.WorkingDays {
		day := WorkingDay{Day: Weekday(wd.Day), IsOff: wd.IsOff}
		if !wd.IsOff {
			day.StartTime = wd.StartTime
			day.EndTime = wd.EndTime
		}
		days = append(days, day)
	}
	return days
}

type UpdateEmployeeRequest struct {
	ID string `json:"-"`
	CreateEmployeeRequest
}

func (r *UpdateEmployeeRequest) Validate() error {
	return r.CreateEmployeeRequest.Validate()
}

type EmployeeFilter struct {
	BranchID     string
	DepartmentID string
	Status       string
	Search       string
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BranchID     string `json:"branch_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Position     string `json:"position,omitempty"`
	Level        string `json:"level,omitempty"`
	Status       string `json:"status"`
	HireDate     string `json:"hire_date,omitempty"`

	Salary     decimal.Decimal `json:"salary"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	CheckInTime              string          `json:"check_in_time"`
	CheckOutTime             string          `json:"check_out_time"`
	GracePeriodMinutes       int             `json:"grace_period_minutes"`
	AllowLateEntry           bool            `json:"allow_late_entry"`
	LateFineAmount           decimal.Decimal `json:"late_fine_amount"`
	AllowEarlyExit           bool            `json:"allow_early_exit"`
	EarlyExitGracePeriod     int             `json:"early_exit_grace_period"`
	EarlyExitFineAmount      decimal.Decimal `json:"early_exit_fine_amount"`
	AllowOvertime            bool            `json:"allow_overtime"`
	AutoCheckOutEnabled      bool            `json:"auto_check_out_enabled"`
	AutoCheckOutAfterMinutes int             `json:"auto_check_out_after_minutes"`
	WorkingDays              []WorkingDay    `json:"working_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                       e.ID,
		Code:                     e.Code,
		Name:                     e.Name,
		Role:                     string(e.Role),
		Email:                    e.Email,
		Phone:                    e.Phone,
		BranchID:                 e.BranchID,
		DepartmentID:             e.DepartmentID,
		Position:                 e.Position,
		Level:                    e.Level,
		Status:                   string(e.Status),
		HireDate:                 e.HireDate,
		Salary:                   e.Salary,
		HourlyRate:               e.HourlyRate,
		CheckInTime:              e.CheckInTime,
		CheckOutTime:             e.CheckOutTime,
		GracePeriodMinutes:       e.GracePeriodMinutes,
		AllowLateEntry:           e.AllowLateEntry,
		LateFineAmount:           e.LateFineAmount,
		AllowEarlyExit:           e.AllowEarlyExit,
		EarlyExitGracePeriod:     e.EarlyExitGracePeriod,
		EarlyExitFineAmount:      e.EarlyExitFineAmount,
		AllowOvertime:            e.AllowOvertime,
		AutoCheckOutEnabled:      e.AutoCheckOutEnabled,
		AutoCheckOutAfterMinutes: e.AutoCheckOutAfterMinutes,
		WorkingDays:              e.WorkingDays,
		CreatedAt:                e.CreatedAt,
		UpdatedAt:                e.UpdatedAt,
	}
}
