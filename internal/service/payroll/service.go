package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	rewardRepo     reward.RewardRepository
	now            func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	rewardRepo reward.RewardRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		rewardRepo:     rewardRepo,
		now:            time.Now,
	}
}

// Helper function to extract the acting employee from context
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "system"
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return employeeID
	}
	return "system"
}

// monthSources holds the day and reward records of one month.
type monthSources struct {
	month   time.Time
	records []attendance.Attendance
	rewards []reward.Reward
}

func (s *PayrollServiceImpl) loadMonth(ctx context.Context, month string) (monthSources, error) {
	start, err := timeutil.ParseMonth(month)
	if err != nil {
		return monthSources{}, err
	}
	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{Month: month})
	if err != nil {
		return monthSources{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	rewards, err := s.rewardRepo.List(ctx, reward.RewardFilter{Month: month})
	if err != nil {
		return monthSources{}, fmt.Errorf("failed to list rewards: %w", err)
	}
	return monthSources{month: start, records: records, rewards: rewards}, nil
}

// refresh brings a pending entry in line with the source records and the
// employee profile. Paid entries are returned untouched. changed reports
// whether anything stored differs.
func (s *PayrollServiceImpl) refresh(entry payroll.Entry, emp employee.Employee, src monthSources) (next payroll.Entry, changed bool) {
	if entry.IsPaid() {
		return entry, false
	}

	agg := AggregateMonth(emp, src.month, src.records, src.rewards)
	changed = !sameAggregate(entry.Aggregate, agg) ||
		entry.EmployeeName != emp.Name ||
		entry.EmployeeCode != emp.Code ||
		entry.BranchID != emp.BranchID ||
		entry.DepartmentID != emp.DepartmentID

	entry.Aggregate = agg
	entry.EmployeeName = emp.Name
	entry.EmployeeCode = emp.Code
	entry.BranchID = emp.BranchID
	entry.DepartmentID = emp.DepartmentID
	if changed {
		entry.UpdatedAt = s.now()
	}
	return entry, changed
}

func sameAggregate(a, b payroll.Aggregate) bool {
	return a.ExpectedWorkingDays == b.ExpectedWorkingDays &&
		a.PresentDays == b.PresentDays &&
		a.AbsentDays == b.AbsentDays &&
		a.BaseSalary.Equal(b.BaseSalary) &&
		a.AutoFines.Equal(b.AutoFines) &&
		a.AutoBonus.Equal(b.AutoBonus) &&
		a.ManualBonus.Equal(b.ManualBonus) &&
		a.ManualDeduction.Equal(b.ManualDeduction) &&
		a.DailyRate.Equal(b.DailyRate) &&
		a.EarnedSalary.Equal(b.EarnedSalary) &&
		a.NetSalary.Equal(b.NetSalary)
}

// GetMonth implements payroll.PayrollService. Employees without an entry get
// one in pending review; pending entries are recomputed and written back
// when they changed. Entries of removed employees are not listed.
func (s *PayrollServiceImpl) GetMonth(ctx context.Context, filter payroll.PayrollFilter) (payroll.MonthResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.MonthResponse{}, err
	}

	src, err := s.loadMonth(ctx, filter.Month)
	if err != nil {
		return payroll.MonthResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{
		BranchID:     filter.BranchID,
		DepartmentID: filter.DepartmentID,
		Search:       filter.Search,
	})
	if err != nil {
		return payroll.MonthResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	existing, err := s.payrollRepo.ListByMonth(ctx, filter.Month)
	if err != nil {
		return payroll.MonthResponse{}, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	byEmployee := make(map[string]payroll.Entry, len(existing))
	for _, e := range existing {
		byEmployee[e.EmployeeID] = e
	}

	now := s.now()
	entries := make([]payroll.Entry, 0, len(employees))
	var dirty []payroll.Entry
	for _, emp := range employees {
		entry, ok := byEmployee[emp.ID]
		if !ok {
			entry = payroll.Entry{
				ID:         payroll.EntryID(emp.ID, filter.Month),
				EmployeeID: emp.ID,
				Month:      filter.Month,
				Status:     payroll.StatusPendingReview,
				CreatedAt:  now,
			}
		}

		entry, changed := s.refresh(entry, emp, src)
		if changed || !ok {
			dirty = append(dirty, entry)
		}
		entries = append(entries, entry)
	}

	if len(dirty) > 0 {
		saved, err := s.payrollRepo.SavePending(ctx, dirty)
		if err != nil {
			return payroll.MonthResponse{}, fmt.Errorf("failed to save payroll entries: %w", err)
		}
		// an entry paid since it was listed is reported as stored
		stored := make(map[string]payroll.Entry, len(saved))
		for _, e := range saved {
			stored[e.ID] = e
		}
		for i, e := range entries {
			if fresh, ok := stored[e.ID]; ok {
				entries[i] = fresh
			}
		}
	}

	resp := payroll.MonthResponse{
		Month:   filter.Month,
		Summary: summarize(filter.Month, entries),
		Entries: make([]payroll.Entry, 0, len(entries)),
	}
	for _, e := range entries {
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		resp.Entries = append(resp.Entries, e)
	}
	return resp, nil
}

func summarize(month string, entries []payroll.Entry) payroll.SummaryResponse {
	sum := payroll.SummaryResponse{
		Month:     month,
		Employees: len(entries),
		Total:     decimal.Zero,
		Paid:      decimal.Zero,
		Pending:   decimal.Zero,
	}
	for _, e := range entries {
		sum.Total = sum.Total.Add(e.NetSalary)
		if e.IsPaid() {
			sum.PaidCount++
			sum.Paid = sum.Paid.Add(e.NetSalary)
		} else {
			sum.PendingCount++
			sum.Pending = sum.Pending.Add(e.NetSalary)
		}
	}
	return sum
}

// current loads an entry and, when pending, recomputes it.
func (s *PayrollServiceImpl) current(ctx context.Context, id string) (payroll.Entry, error) {
	entry, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Entry{}, err
	}
	if entry.IsPaid() {
		return entry, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.Entry{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get employee: %w", err)
	}
	src, err := s.loadMonth(ctx, entry.Month)
	if err != nil {
		return payroll.Entry{}, err
	}
	entry, _ = s.refresh(entry, emp, src)
	return entry, nil
}

func (s *PayrollServiceImpl) GetEntry(ctx context.Context, id string) (payroll.Entry, error) {
	return s.current(ctx, id)
}

// PayEntry implements payroll.PayrollService. The amounts at payment time
// become the snapshot kept until the entry is reversed.
func (s *PayrollServiceImpl) PayEntry(ctx context.Context, id string) (payroll.Entry, error) {
	entry, err := s.current(ctx, id)
	if err != nil {
		return payroll.Entry{}, err
	}
	if entry.IsPaid() {
		return payroll.Entry{}, payroll.ErrEntryAlreadyPaid
	}

	markPaid(&entry, actorFromContext(ctx), s.now())
	paid, err := s.payrollRepo.Transition(ctx, entry, payroll.StatusPendingReview)
	if err != nil {
		if errors.Is(err, payroll.ErrEntryAlreadyPaid) || errors.Is(err, payroll.ErrEntryNotFound) {
			return payroll.Entry{}, err
		}
		return payroll.Entry{}, fmt.Errorf("failed to pay entry: %w", err)
	}

	slog.Info("Payroll entry paid", "entry_id", paid.ID, "net_salary", paid.NetSalary.String(), "paid_by", paid.PaidBy)
	return paid, nil
}

func markPaid(entry *payroll.Entry, actor string, now time.Time) {
	entry.Status = payroll.StatusPaid
	entry.PaymentDate = &now
	entry.PaidBy = actor
	entry.UpdatedAt = now
}

// PayAll implements payroll.PayrollService. Entries paid by someone else
// while the batch was prepared are left out of the response.
func (s *PayrollServiceImpl) PayAll(ctx context.Context, filter payroll.PayrollFilter) (payroll.PayAllResponse, error) {
	filter.Status = string(payroll.StatusPendingReview)
	month, err := s.GetMonth(ctx, filter)
	if err != nil {
		return payroll.PayAllResponse{}, err
	}

	actor := actorFromContext(ctx)
	now := s.now()
	paid := make([]payroll.Entry, 0, len(month.Entries))
	for _, entry := range month.Entries {
		markPaid(&entry, actor, now)
		paid = append(paid, entry)
	}

	paid, err = s.payrollRepo.TransitionMany(ctx, paid, payroll.StatusPendingReview)
	if err != nil {
		return payroll.PayAllResponse{}, fmt.Errorf("failed to pay entries: %w", err)
	}

	slog.Info("Payroll month paid", "month", filter.Month, "entries", len(paid), "paid_by", actor)
	return payroll.PayAllResponse{Month: filter.Month, Paid: paid}, nil
}

// ReverseEntry implements payroll.PayrollService. The entry returns to
// pending review and follows the source records again.
func (s *PayrollServiceImpl) ReverseEntry(ctx context.Context, id string) (payroll.Entry, error) {
	entry, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Entry{}, err
	}
	if !entry.IsPaid() {
		return payroll.Entry{}, payroll.ErrEntryNotPaid
	}

	entry.Status = payroll.StatusPendingReview
	entry.PaymentDate = nil
	entry.PaidBy = ""
	entry.UpdatedAt = s.now()

	if emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID); err == nil {
		src, err := s.loadMonth(ctx, entry.Month)
		if err != nil {
			return payroll.Entry{}, err
		}
		entry, _ = s.refresh(entry, emp, src)
	}

	reversed, err := s.payrollRepo.Transition(ctx, entry, payroll.StatusPaid)
	if err != nil {
		if errors.Is(err, payroll.ErrEntryNotPaid) || errors.Is(err, payroll.ErrEntryNotFound) {
			return payroll.Entry{}, err
		}
		return payroll.Entry{}, fmt.Errorf("failed to reverse entry: %w", err)
	}

	slog.Info("Payroll entry reversed", "entry_id", reversed.ID, "by", actorFromContext(ctx))
	return reversed, nil
}

// SetNotes implements payroll.PayrollService. A pending entry is brought up
// to date first; the notes themselves never touch the status.
func (s *PayrollServiceImpl) SetNotes(ctx context.Context, req payroll.UpdateNotesRequest) (payroll.Entry, error) {
	if err := req.Validate(); err != nil {
		return payroll.Entry{}, err
	}

	entry, err := s.current(ctx, req.ID)
	if err != nil {
		return payroll.Entry{}, err
	}
	if !entry.IsPaid() {
		if _, err := s.payrollRepo.SavePending(ctx, []payroll.Entry{entry}); err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to refresh entry: %w", err)
		}
	}

	updated, err := s.payrollRepo.UpdateNotes(ctx, req.ID, req.Notes, s.now())
	if err != nil {
		return payroll.Entry{}, fmt.Errorf("failed to update notes: %w", err)
	}
	return updated, nil
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, month string) (payroll.SummaryResponse, error) {
	resp, err := s.GetMonth(ctx, payroll.PayrollFilter{Month: month})
	if err != nil {
		return payroll.SummaryResponse{}, err
	}
	return resp.Summary, nil
}
