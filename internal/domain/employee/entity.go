package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"`
	Role         Role   `json:"role"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BranchID     string `json:"branch_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Position     string `json:"position,omitempty"`
	Level        string `json:"level,omitempty"`
	Status       Status `json:"status"`
	HireDate     string `json:"hire_date,omitempty"`

	Salary     decimal.Decimal `json:"salary"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	// Nominal shift, used for weekdays without a WorkingDays entry.
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`

	GracePeriodMinutes       int             `json:"grace_period_minutes"`
	AllowLateEntry           bool            `json:"allow_late_entry"`
	LateFineAmount           decimal.Decimal `json:"late_fine_amount"`
	AllowEarlyExit           bool            `json:"allow_early_exit"`
	EarlyExitGracePeriod     int             `json:"early_exit_grace_period"`
	EarlyExitFineAmount      decimal.Decimal `json:"early_exit_fine_amount"`
	AllowOvertime            bool            `json:"allow_overtime"`
	AutoCheckOutEnabled      bool            `json:"auto_check_out_enabled"`
	AutoCheckOutAfterMinutes int             `json:"auto_check_out_after_minutes"`

	WorkingDays []WorkingDay `json:"working_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkingDay is one row of the weekly schedule table.
// StartTime and EndTime are ignored when IsOff is set.
type WorkingDay struct {
	Day       Weekday `json:"day"`
	IsOff     bool    `json:"is_off"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
}

type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is indexed by time.Weekday.
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var WeekdayValues = []string{
	string(Sunday), string(Monday), string(Tuesday), string(Wednesday),
	string(Thursday), string(Friday), string(Saturday),
}

func WeekdayOf(t time.Time) Weekday {
	return Weekdays[t.Weekday()]
}

// IsWeekend reports the company-wide default rest days.
func (d Weekday) IsWeekend() bool {
	return d == Friday || d == Saturday
}

// Day returns the entry for weekday d, if any.
func (e Employee) Day(d Weekday) (WorkingDay, bool) {
	for _, wd := range e.WorkingDays {
		if wd.Day == d {
			return wd, true
		}
	}
	return WorkingDay{}, false
}

// DefaultWorkingDays is Sunday to Thursday on the given shift, Friday and Saturday off.
func DefaultWorkingDays(start, end string) []WorkingDay {
	days := make([]WorkingDay, 0, len(Weekdays))
	for _, d := range Weekdays {
		if d.IsWeekend() {
			days = append(days, WorkingDay{Day: d, IsOff: true})
			continue
		}
		days = append(days, WorkingDay{Day: d, StartTime: start, EndTime: end})
	}
	return days
}

type Role string

const (
	RoleSuperAdmin     Role = "super-admin"
	RoleBranchManager  Role = "branch-manager"
	RoleDeptSupervisor Role = "dept-supervisor"
	RoleEmployee       Role = "employee"
)

var RoleValues = []string{
	string(RoleSuperAdmin),
	string(RoleBranchManager),
	string(RoleDeptSupervisor),
	string(RoleEmployee),
}

// IsAdmin reports roles allowed to settle payroll.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleBranchManager
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOnLeave    Status = "on-leave"
	StatusTerminated Status = "terminated"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
	string(StatusOnLeave),
	string(StatusTerminated),
}
