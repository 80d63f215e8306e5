package state

import (
	"context"
	"sort"

	"github.com/madar-hris/hrms-backend-go/internal/domain/hierarchy"
)

type HierarchyRepository struct {
	store *Store
}

func NewHierarchyRepository(store *Store) hierarchy.HierarchyRepository {
	return &HierarchyRepository{store: store}
}

func (r *HierarchyRepository) Create(ctx context.Context, branch hierarchy.Branch) (hierarchy.Branch, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]hierarchy.Branch(nil), s.hierarchy...), branch)
	if err := commit(ctx, s, KeyHierarchy, &s.hierarchy, next); err != nil {
		return hierarchy.Branch{}, err
	}
	s.notify("hierarchy", "created", branch.ID)
	return branch, nil
}

func (r *HierarchyRepository) Update(ctx context.Context, id string, fn func(*hierarchy.Branch) error) (hierarchy.Branch, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := find(s.hierarchy, func(b hierarchy.Branch) bool { return b.ID == id })
	if !ok {
		return hierarchy.Branch{}, hierarchy.ErrBranchNotFound
	}

	// fn works on a deep copy so a failed edit leaves memory untouched
	branch := cloneBranch(stored)
	if err := fn(&branch); err != nil {
		return hierarchy.Branch{}, err
	}
	branch.ID = id

	next := replace(s.hierarchy, branch, func(b hierarchy.Branch) bool { return b.ID == id })
	if err := commit(ctx, s, KeyHierarchy, &s.hierarchy, next); err != nil {
		return hierarchy.Branch{}, err
	}
	s.notify("hierarchy", "updated", id)
	return cloneBranch(branch), nil
}

func (r *HierarchyRepository) GetByID(ctx context.Context, id string) (hierarchy.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := find(r.store.hierarchy, func(b hierarchy.Branch) bool { return b.ID == id })
	if !ok {
		return hierarchy.Branch{}, hierarchy.ErrBranchNotFound
	}
	return cloneBranch(b), nil
}

func (r *HierarchyRepository) List(ctx context.Context) ([]hierarchy.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]hierarchy.Branch, 0, len(r.store.hierarchy))
	for _, b := range r.store.hierarchy {
		out = append(out, cloneBranch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *HierarchyRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := without(s.hierarchy, func(b hierarchy.Branch) bool { return b.ID == id })
	if !ok {
		return hierarchy.ErrBranchNotFound
	}
	if err := commit(ctx, s, KeyHierarchy, &s.hierarchy, next); err != nil {
		return err
	}
	s.notify("hierarchy", "deleted", id)
	return nil
}

func cloneBranch(b hierarchy.Branch) hierarchy.Branch {
	depts := make([]hierarchy.Department, len(b.Departments))
	for i, d := range b.Departments {
		d.Positions = append([]string{}, d.Positions...)
		depts[i] = d
	}
	b.Departments = depts
	return b
}
