package state

import (
	"context"
	"sort"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
)

type PayrollRepository struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &PayrollRepository{store: store}
}

func entryByID(id string) func(payroll.Entry) bool {
	return func(e payroll.Entry) bool { return e.ID == id }
}

// statusConflict explains why a stored entry refused a transition.
func statusConflict(stored payroll.Entry) error {
	if stored.IsPaid() {
		return payroll.ErrEntryAlreadyPaid
	}
	return payroll.ErrEntryNotPaid
}

func (r *PayrollRepository) SavePending(ctx context.Context, entries []payroll.Entry) ([]payroll.Entry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]payroll.Entry, len(entries))
	next := s.payroll
	ids := make([]string, 0, len(entries))
	for i, entry := range entries {
		entry.ID = payroll.EntryID(entry.EmployeeID, entry.Month)
		if current, ok := find(next, entryByID(entry.ID)); ok && current.IsPaid() {
			stored[i] = current
			continue
		}
		if entry.IsPaid() {
			stored[i] = entry
			continue
		}
		next = replace(next, entry, entryByID(entry.ID))
		stored[i] = entry
		ids = append(ids, entry.ID)
	}

	if len(ids) == 0 {
		return stored, nil
	}
	if err := commit(ctx, s, KeyPayroll, &s.payroll, next); err != nil {
		return nil, err
	}
	s.notify("payroll", "saved", ids...)
	return stored, nil
}

func (r *PayrollRepository) Transition(ctx context.Context, entry payroll.Entry, from payroll.Status) (payroll.Entry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = payroll.EntryID(entry.EmployeeID, entry.Month)
	current, ok := find(s.payroll, entryByID(entry.ID))
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	if current.Status != from {
		return payroll.Entry{}, statusConflict(current)
	}

	next := replace(s.payroll, entry, entryByID(entry.ID))
	if err := commit(ctx, s, KeyPayroll, &s.payroll, next); err != nil {
		return payroll.Entry{}, err
	}
	s.notify("payroll", string(entry.Status), entry.ID)
	s.notifyPayslips(entry)
	return entry, nil
}

func (r *PayrollRepository) TransitionMany(ctx context.Context, entries []payroll.Entry, from payroll.Status) ([]payroll.Entry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := make([]payroll.Entry, 0, len(entries))
	next := s.payroll
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry.ID = payroll.EntryID(entry.EmployeeID, entry.Month)
		current, ok := find(next, entryByID(entry.ID))
		if !ok || current.Status != from {
			continue
		}
		next = replace(next, entry, entryByID(entry.ID))
		moved = append(moved, entry)
		ids = append(ids, entry.ID)
	}

	if len(moved) == 0 {
		return moved, nil
	}
	if err := commit(ctx, s, KeyPayroll, &s.payroll, next); err != nil {
		return nil, err
	}
	s.notify("payroll", string(moved[0].Status), ids...)
	s.notifyPayslips(moved...)
	return moved, nil
}

func (r *PayrollRepository) UpdateNotes(ctx context.Context, id, notes string, at time.Time) (payroll.Entry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := find(s.payroll, entryByID(id))
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	entry.Notes = notes
	entry.UpdatedAt = at

	next := replace(s.payroll, entry, entryByID(id))
	if err := commit(ctx, s, KeyPayroll, &s.payroll, next); err != nil {
		return payroll.Entry{}, err
	}
	s.notify("payroll", "saved", id)
	return entry, nil
}

func (r *PayrollRepository) GetByID(ctx context.Context, id string) (payroll.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := find(r.store.payroll, entryByID(id))
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	return entry, nil
}

func (r *PayrollRepository) ListByMonth(ctx context.Context, month string) ([]payroll.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.payroll, func(e payroll.Entry) bool { return e.Month == month })
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}
