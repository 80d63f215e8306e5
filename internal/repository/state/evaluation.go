package state

import (
	"context"
	"sort"

	"github.com/madar-hris/hrms-backend-go/internal/domain/evaluation"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
)

type CriteriaRepository struct {
	store *Store
}

func NewCriteriaRepository(store *Store) evaluation.CriteriaRepository {
	return &CriteriaRepository{store: store}
}

func (r *CriteriaRepository) Upsert(ctx context.Context, c evaluation.Criteria) (evaluation.Criteria, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := replace(s.criteria, c, func(x evaluation.Criteria) bool { return x.ID == c.ID })
	if err := commit(ctx, s, KeyCriteria, &s.criteria, next); err != nil {
		return evaluation.Criteria{}, err
	}
	s.notify("criteria", "saved", c.ID)
	return c, nil
}

func (r *CriteriaRepository) Update(ctx context.Context, c evaluation.Criteria) (evaluation.Criteria, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := find(s.criteria, func(x evaluation.Criteria) bool { return x.ID == c.ID })
	if !ok {
		return evaluation.Criteria{}, evaluation.ErrCriteriaNotFound
	}
	c.CreatedAt = stored.CreatedAt

	next := replace(s.criteria, c, func(x evaluation.Criteria) bool { return x.ID == c.ID })
	if err := commit(ctx, s, KeyCriteria, &s.criteria, next); err != nil {
		return evaluation.Criteria{}, err
	}
	s.notify("criteria", "updated", c.ID)
	return c, nil
}

func (r *CriteriaRepository) List(ctx context.Context) ([]evaluation.Criteria, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.criteria, func(evaluation.Criteria) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *CriteriaRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := without(s.criteria, func(x evaluation.Criteria) bool { return x.ID == id })
	if !ok {
		return evaluation.ErrCriteriaNotFound
	}
	if err := commit(ctx, s, KeyCriteria, &s.criteria, next); err != nil {
		return err
	}
	s.notify("criteria", "deleted", id)
	return nil
}

type EvaluationRepository struct {
	store *Store
}

func NewEvaluationRepository(store *Store) evaluation.EvaluationRepository {
	return &EvaluationRepository{store: store}
}

func (r *EvaluationRepository) Upsert(ctx context.Context, e evaluation.Evaluation) (evaluation.Evaluation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := replace(s.evaluations, e, func(x evaluation.Evaluation) bool { return x.ID == e.ID })
	if err := commit(ctx, s, KeyEvaluations, &s.evaluations, next); err != nil {
		return evaluation.Evaluation{}, err
	}
	s.notify("evaluations", "saved", e.ID)
	return e, nil
}

func (r *EvaluationRepository) List(ctx context.Context, f evaluation.EvaluationFilter) ([]evaluation.Evaluation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.evaluations, func(x evaluation.Evaluation) bool {
		if f.EmployeeID != "" && x.EmployeeID != f.EmployeeID {
			return false
		}
		if f.BranchID != "" && x.BranchID != f.BranchID {
			return false
		}
		if f.DepartmentID != "" && x.DepartmentID != f.DepartmentID {
			return false
		}
		return timeutil.InRange(x.Date, f.From, f.To)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
