package state

import (
	"context"
	"sort"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
)

type AttendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Upsert keys records by (employee, date): a second save for the same day
// replaces the first and takes the deterministic record ID.
func (r *AttendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = attendance.RecordID(record.EmployeeID, record.Date)
	next := replace(s.attendance, record, func(a attendance.Attendance) bool {
		return a.EmployeeID == record.EmployeeID && a.Date == record.Date
	})
	if err := commit(ctx, s, KeyAttendance, &s.attendance, next); err != nil {
		return attendance.Attendance{}, err
	}
	s.notify("attendance", "saved", record.ID)
	return record, nil
}

func (r *AttendanceRepository) CloseSession(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sameDay := func(a attendance.Attendance) bool {
		return a.EmployeeID == record.EmployeeID && a.Date == record.Date
	}
	current, ok := find(s.attendance, sameDay)
	if !ok || !timeutil.IsBlank(current.CheckOut) || current.CheckIn != record.CheckIn {
		return attendance.Attendance{}, attendance.ErrSessionNotOpen
	}

	record.ID = attendance.RecordID(record.EmployeeID, record.Date)
	next := replace(s.attendance, record, sameDay)
	if err := commit(ctx, s, KeyAttendance, &s.attendance, next); err != nil {
		return attendance.Attendance{}, err
	}
	s.notify("attendance", "saved", record.ID)
	return record, nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := find(r.store.attendance, func(a attendance.Attendance) bool { return a.ID == id })
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := find(r.store.attendance, func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && a.Date == date
	})
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *AttendanceRepository) List(ctx context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.attendance, func(a attendance.Attendance) bool {
		if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
			return false
		}
		if f.Month != "" && !timeutil.InMonth(a.Date, f.Month) {
			return false
		}
		if !timeutil.InRange(a.Date, f.From, f.To) {
			return false
		}
		if f.Status != "" && string(a.Status) != f.Status {
			return false
		}
		if f.BranchID != "" && a.BranchID != f.BranchID {
			return false
		}
		if f.DepartmentID != "" && a.DepartmentID != f.DepartmentID {
			return false
		}
		return true
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out, nil
}

func (r *AttendanceRepository) GetOpenSessions(ctx context.Context, date string) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.attendance, func(a attendance.Attendance) bool {
		return a.Date == date && !timeutil.IsBlank(a.CheckIn) && timeutil.IsBlank(a.CheckOut)
	}), nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := without(s.attendance, func(a attendance.Attendance) bool { return a.ID == id })
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if err := commit(ctx, s, KeyAttendance, &s.attendance, next); err != nil {
		return err
	}
	s.notify("attendance", "deleted", id)
	return nil
}
