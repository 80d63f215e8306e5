package attendance

import (
	"context"
	"fmt"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	scheduleService "github.com/madar-hris/hrms-backend-go/internal/service/schedule"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	rewardService  reward.RewardService
	now            func() time.Time

	// writeMu pairs each record write with its adjustment sync
	writeMu sync.Mutex
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	rewardService reward.RewardService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		rewardService:  rewardService,
		now:            time.Now,
	}
}

func mapAttendanceToResponse(att attendance.Attendance, sched schedule.Resolved) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		Attendance:       att,
		ExpectedCheckIn:  sched.ExpectedCheckIn,
		ExpectedCheckOut: sched.ExpectedCheckOut,
		WorkingDay:       sched.IsWorkingDay,
	}
}

// forcedOutcome is the zero-priced outcome of a status set by hand.
func forcedOutcome(status attendance.Status) attendance.Outcome {
	return attendance.Outcome{
		Status:          status,
		LateFine:        decimal.Zero,
		EarlyExitFine:   decimal.Zero,
		DeductionAmount: decimal.Zero,
		BonusAmount:     decimal.Zero,
		ShiftSalary:     decimal.Zero,
	}
}

// SaveAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SaveAttendance(ctx context.Context, req attendance.SaveAttendanceRequest) (attendance.AttendanceResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	sched := scheduleService.ResolveSchedule(emp, date)

	var outcome attendance.Outcome
	if req.Status != "" {
		outcome = forcedOutcome(attendance.Status(req.Status))
	} else {
		outcome = EvaluatePunch(attendance.Punch{CheckIn: req.CheckIn, CheckOut: req.CheckOut}, sched, PolicyFor(emp))
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	return a.store(ctx, a.attendanceRepo.Upsert, emp, attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       sched.Date,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Notes:      req.Notes,
	}, sched, outcome)
}

type saveFunc func(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error)

// store prices rec with outcome, writes it with save and brings the day's
// automatic adjustments in line with it. Callers hold writeMu.
func (a *AttendanceServiceImpl) store(ctx context.Context, save saveFunc, emp employee.Employee, rec attendance.Attendance, sched schedule.Resolved, outcome attendance.Outcome) (attendance.AttendanceResponse, error) {
	rec.EmployeeName = emp.Name
	rec.BranchID = emp.BranchID
	rec.DepartmentID = emp.DepartmentID
	rec.Status = outcome.Status
	rec.DelayMinutes = outcome.DelayMinutes
	rec.DeductionAmount = outcome.DeductionAmount
	rec.BonusAmount = outcome.BonusAmount
	rec.ShiftSalary = outcome.ShiftSalary
	rec.UpdatedAt = a.now()

	saved, err := save(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	if err := a.rewardService.SyncAutomatic(ctx, emp.ID, emp.Name, saved.Date, Adjustments(outcome)); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to sync automatic adjustments: %w", err)
	}

	return mapAttendanceToResponse(saved, sched), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.withSchedule(ctx, rec), nil
}

// withSchedule attaches the expected shift when the employee still exists.
func (a *AttendanceServiceImpl) withSchedule(ctx context.Context, rec attendance.Attendance) attendance.AttendanceResponse {
	emp, err := a.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{Attendance: rec}
	}
	date, err := timeutil.ParseDate(rec.Date)
	if err != nil {
		return attendance.AttendanceResponse{Attendance: rec}
	}
	return mapAttendanceToResponse(rec, scheduleService.ResolveSchedule(emp, date))
}

// virtualRow is the display row of an employee with nothing saved for date.
func virtualRow(emp employee.Employee, sched schedule.Resolved) attendance.View {
	return attendance.View{
		Attendance: attendance.Attendance{
			ID:              attendance.RecordID(emp.ID, sched.Date),
			EmployeeID:      emp.ID,
			EmployeeName:    emp.Name,
			Date:            sched.Date,
			CheckIn:         timeutil.Placeholder,
			CheckOut:        timeutil.Placeholder,
			Status:          attendance.StatusAbsent,
			DeductionAmount: decimal.Zero,
			BonusAmount:     decimal.Zero,
			ShiftSalary:     decimal.Zero,
			BranchID:        emp.BranchID,
			DepartmentID:    emp.DepartmentID,
		},
		Virtual:    true,
		WorkingDay: sched.IsWorkingDay,
	}
}

// GetDay implements attendance.AttendanceService. Every matching employee
// gets one row; saved records win over virtual ones. Virtual rows on days off
// are listed but not counted.
func (a *AttendanceServiceImpl) GetDay(ctx context.Context, filter attendance.DayFilter) (attendance.DayResponse, error) {
	date, err := timeutil.ParseDate(filter.Date)
	if err != nil {
		return attendance.DayResponse{}, err
	}
	if filter.Status != "" && !attendance.Status(filter.Status).Valid() {
		return attendance.DayResponse{}, attendance.ErrInvalidStatus
	}

	employees, err := a.employeeRepo.List(ctx, employee.EmployeeFilter{
		BranchID:     filter.BranchID,
		DepartmentID: filter.DepartmentID,
		Search:       filter.Search,
	})
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := a.attendanceRepo.List(ctx, attendance.AttendanceFilter{From: filter.Date, To: filter.Date})
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	saved := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		saved[rec.EmployeeID] = rec
	}

	resp := attendance.DayResponse{Date: filter.Date, Rows: make([]attendance.View, 0, len(employees))}
	for _, emp := range employees {
		sched := scheduleService.ResolveSchedule(emp, date)

		row := virtualRow(emp, sched)
		if rec, ok := saved[emp.ID]; ok {
			row = attendance.View{Attendance: rec, WorkingDay: sched.IsWorkingDay}
		}

		if !row.Virtual || row.WorkingDay {
			countRow(&resp.Stats, row.Status)
		}
		if filter.Status != "" && string(row.Status) != filter.Status {
			continue
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

func countRow(stats *attendance.DayStats, status attendance.Status) {
	stats.Total++
	switch status {
	case attendance.StatusPresent:
		stats.Present++
	case attendance.StatusLate:
		stats.Present++
		stats.Late++
	case attendance.StatusAbsent:
		stats.Absent++
	case attendance.StatusOnLeave:
		stats.OnLeave++
	case attendance.StatusEarlyExit:
		stats.EarlyExit++
	}
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if filter.Status != "" && !attendance.Status(filter.Status).Valid() {
		return nil, attendance.ErrInvalidStatus
	}

	records, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, a.withSchedule(ctx, rec))
	}
	return responses, nil
}

// DeleteAttendance removes a saved record and cancels its automatic adjustments.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	rec, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	none := Adjustments(forcedOutcome(attendance.StatusAbsent))
	if err := a.rewardService.SyncAutomatic(ctx, rec.EmployeeID, rec.EmployeeName, rec.Date, none); err != nil {
		return fmt.Errorf("failed to cancel automatic adjustments: %w", err)
	}
	return nil
}

// AutoCheckOut closes the open sessions of yesterday and today for employees
// with auto check-out enabled, once now has passed the expected check-out by
// the configured number of minutes. The session is closed at the expected
// check-out time and evaluated like a manual entry.
func (a *AttendanceServiceImpl) AutoCheckOut(ctx context.Context, now time.Time) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	closed := 0

	for _, day := range []time.Time{today.AddDate(0, 0, -1), today} {
		sessions, err := a.attendanceRepo.GetOpenSessions(ctx, day.Format(timeutil.DateLayout))
		if err != nil {
			return closed, fmt.Errorf("failed to get open sessions: %w", err)
		}

		for _, session := range sessions {
			ok, err := a.closeSession(ctx, session, day, now)
			if err != nil {
				slog.Error("Failed to auto check-out session", "attendance_id", session.ID, "error", err)
				continue
			}
			if ok {
				closed++
			}
		}
	}

	return closed, nil
}

func (a *AttendanceServiceImpl) closeSession(ctx context.Context, listed attendance.Attendance, day, now time.Time) (bool, error) {
	emp, err := a.employeeRepo.GetByID(ctx, listed.EmployeeID)
	if err != nil {
		return false, err
	}
	if !emp.AutoCheckOutEnabled {
		return false, nil
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	// the session may have been closed by hand since the sweep listed it
	session, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, listed.EmployeeID, listed.Date)
	if err != nil {
		return false, err
	}
	if session == nil || timeutil.IsBlank(session.CheckIn) || !timeutil.IsBlank(session.CheckOut) {
		return false, nil
	}

	sched := scheduleService.ResolveSchedule(emp, day)
	expectedIn, okIn := timeutil.ClockMinutes(sched.ExpectedCheckIn)
	expectedOut, okOut := timeutil.ClockMinutes(sched.ExpectedCheckOut)
	if !okIn || !okOut {
		return false, nil
	}

	// An overnight shift ends on the following calendar day
	endOffset := expectedOut
	if expectedOut < expectedIn {
		endOffset += timeutil.MinutesPerDay
	}
	deadline := day.Add(time.Duration(endOffset+emp.AutoCheckOutAfterMinutes) * time.Minute)
	if now.Before(deadline) {
		return false, nil
	}

	closing := *session
	closing.CheckOut = timeutil.FormatClock(expectedOut)
	closing.AutoClosed = true
	if strings.TrimSpace(closing.Notes) == "" {
		closing.Notes = "auto check-out"
	}

	outcome := EvaluatePunch(attendance.Punch{CheckIn: closing.CheckIn, CheckOut: closing.CheckOut}, sched, PolicyFor(emp))
	if _, err := a.store(ctx, a.attendanceRepo.CloseSession, emp, closing, sched, outcome); err != nil {
		if errors.Is(err, attendance.ErrSessionNotOpen) {
			return false, nil
		}
		return false, err
	}

	slog.Info("Attendance auto checked-out", "attendance_id", closing.ID, "employee_id", emp.ID, "check_out", closing.CheckOut)
	return true, nil
}
