// Package state keeps the HR collections in memory and writes each
// collection back to a storage.BlobStore as a whole after every change.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/evaluation"
	"github.com/madar-hris/hrms-backend-go/internal/domain/hierarchy"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/sse"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

// Blob keys, one per collection.
const (
	KeyEmployees   = "hrms_employees"
	KeyAttendance  = "hrms_attendance"
	KeyRewards     = "hrms_rewards"
	KeyAdvances    = "hrms_advances"
	KeyPayroll     = "hrms_payroll"
	KeyCriteria    = "hrms_criteria"
	KeyEvaluations = "hrms_evaluations"
	KeyHierarchy   = "hrms_hierarchy"
)

// Notifier receives a change event after every successful write, and a
// personal event for the employee a payroll transition concerns.
type Notifier interface {
	Broadcast(event sse.Event)
	Publish(key string, event sse.Event)
}

// ChangeEvent is the payload of the events published by the store.
type ChangeEvent struct {
	Collection string   `json:"collection"`
	Action     string   `json:"action"`
	IDs        []string `json:"ids"`
}

// PayslipEvent tells an employee their own ledger entry moved.
type PayslipEvent struct {
	EntryID   string          `json:"entry_id"`
	Month     string          `json:"month"`
	Status    payroll.Status  `json:"status"`
	NetSalary decimal.Decimal `json:"net_salary"`
}

// Store holds every collection behind one lock. Each write replaces the
// collection in memory only after the blob write succeeded, so memory and
// storage agree per collection. Writes spanning collections are not atomic.
type Store struct {
	mu       sync.RWMutex
	blobs    storage.BlobStore
	notifier Notifier

	employees   []employee.Employee
	attendance  []attendance.Attendance
	rewards     []reward.Reward
	advances    []advance.Advance
	payroll     []payroll.Entry
	criteria    []evaluation.Criteria
	evaluations []evaluation.Evaluation
	hierarchy   []hierarchy.Branch
}

// Open loads every collection. A missing blob is an empty collection; so is
// one that no longer decodes into the current record shape.
func Open(ctx context.Context, blobs storage.BlobStore, notifier Notifier) (*Store, error) {
	s := &Store{blobs: blobs, notifier: notifier}

	var err error
	if s.employees, err = load[employee.Employee](ctx, blobs, KeyEmployees); err != nil {
		return nil, err
	}
	if s.attendance, err = load[attendance.Attendance](ctx, blobs, KeyAttendance); err != nil {
		return nil, err
	}
	if s.rewards, err = load[reward.Reward](ctx, blobs, KeyRewards); err != nil {
		return nil, err
	}
	if s.advances, err = load[advance.Advance](ctx, blobs, KeyAdvances); err != nil {
		return nil, err
	}
	if s.payroll, err = load[payroll.Entry](ctx, blobs, KeyPayroll); err != nil {
		return nil, err
	}
	if s.criteria, err = load[evaluation.Criteria](ctx, blobs, KeyCriteria); err != nil {
		return nil, err
	}
	if s.evaluations, err = load[evaluation.Evaluation](ctx, blobs, KeyEvaluations); err != nil {
		return nil, err
	}
	if s.hierarchy, err = load[hierarchy.Branch](ctx, blobs, KeyHierarchy); err != nil {
		return nil, err
	}

	slog.Info("State store loaded",
		"employees", len(s.employees),
		"attendance", len(s.attendance),
		"rewards", len(s.rewards),
		"payroll", len(s.payroll),
		"branches", len(s.hierarchy),
	)
	return s, nil
}

func load[T any](ctx context.Context, blobs storage.BlobStore, key string) ([]T, error) {
	data, err := blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("Discarding undecodable collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Flush writes every collection, in one transaction when the store supports it.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collections := map[string]interface{}{
		KeyEmployees:   s.employees,
		KeyAttendance:  s.attendance,
		KeyRewards:     s.rewards,
		KeyAdvances:    s.advances,
		KeyPayroll:     s.payroll,
		KeyCriteria:    s.criteria,
		KeyEvaluations: s.evaluations,
		KeyHierarchy:   s.hierarchy,
	}

	blobs := make(map[string][]byte, len(collections))
	for key, items := range collections {
		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		blobs[key] = data
	}

	if batch, ok := s.blobs.(storage.BatchPutter); ok {
		return batch.PutMany(ctx, blobs)
	}
	for key, data := range blobs {
		if err := s.blobs.Put(ctx, key, data); err != nil {
			return fmt.Errorf("flush %s: %w", key, err)
		}
	}
	return nil
}

// commit writes next under key and, on success, installs it as *coll.
// Callers hold s.mu.
func commit[T any](ctx context.Context, s *Store, key string, coll *[]T, next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	*coll = next
	return nil
}

func (s *Store) notify(collection, action string, ids ...string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Broadcast(sse.Event{
		Event: collection + "." + action,
		Data:  ChangeEvent{Collection: collection, Action: action, IDs: ids},
	})
}

// notifyPayslips publishes to the stream of each entry's employee.
func (s *Store) notifyPayslips(entries ...payroll.Entry) {
	if s.notifier == nil {
		return
	}
	for _, e := range entries {
		s.notifier.Publish(e.EmployeeID, sse.Event{
			Event: "payslip." + string(e.Status),
			Data:  PayslipEvent{EntryID: e.ID, Month: e.Month, Status: e.Status, NetSalary: e.NetSalary},
		})
	}
}

// replace drops every item matching same and appends item.
func replace[T any](items []T, item T, same func(T) bool) []T {
	next := make([]T, 0, len(items)+1)
	for _, it := range items {
		if !same(it) {
			next = append(next, it)
		}
	}
	return append(next, item)
}

// without drops every item matching drop; ok is false when nothing matched.
func without[T any](items []T, drop func(T) bool) (next []T, ok bool) {
	next = make([]T, 0, len(items))
	for _, it := range items {
		if drop(it) {
			ok = true
			continue
		}
		next = append(next, it)
	}
	return next, ok
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
