package state

import (
	"context"
	"sort"

	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
)

type AdvanceRepository struct {
	store *Store
}

func NewAdvanceRepository(store *Store) advance.AdvanceRepository {
	return &AdvanceRepository{store: store}
}

func (r *AdvanceRepository) Upsert(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := replace(s.advances, a, func(x advance.Advance) bool { return x.ID == a.ID })
	if err := commit(ctx, s, KeyAdvances, &s.advances, next); err != nil {
		return advance.Advance{}, err
	}
	s.notify("advances", "saved", a.ID)
	return a, nil
}

func (r *AdvanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := find(r.store.advances, func(x advance.Advance) bool { return x.ID == id })
	if !ok {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return a, nil
}

func (r *AdvanceRepository) List(ctx context.Context, f advance.AdvanceFilter) ([]advance.Advance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.advances, func(x advance.Advance) bool {
		if f.EmployeeID != "" && x.EmployeeID != f.EmployeeID {
			return false
		}
		return f.Status == "" || string(x.Status) == f.Status
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
