package state

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &EmployeeRepository{store: store}
}

func (r *EmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := find(s.employees, func(e employee.Employee) bool {
		return e.ID == newEmployee.ID || strings.EqualFold(e.Code, newEmployee.Code)
	}); taken {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}

	next := append(append([]employee.Employee(nil), s.employees...), newEmployee)
	if err := commit(ctx, s, KeyEmployees, &s.employees, next); err != nil {
		return employee.Employee{}, err
	}
	s.notify("employees", "created", newEmployee.ID)
	return newEmployee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := find(s.employees, func(e employee.Employee) bool { return e.ID == emp.ID }); !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if _, taken := find(s.employees, func(e employee.Employee) bool {
		return e.ID != emp.ID && strings.EqualFold(e.Code, emp.Code)
	}); taken {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}

	next := replace(s.employees, emp, func(e employee.Employee) bool { return e.ID == emp.ID })
	if err := commit(ctx, s, KeyEmployees, &s.employees, next); err != nil {
		return employee.Employee{}, err
	}
	s.notify("employees", "updated", emp.ID)
	return emp, nil
}

func (r *EmployeeRepository) Assign(ctx context.Context, id string, role employee.Role, branchID, departmentID string, at time.Time) (employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := find(s.employees, func(e employee.Employee) bool { return e.ID == id })
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if emp.Role != employee.RoleSuperAdmin {
		emp.Role = role
	}
	emp.BranchID = branchID
	emp.DepartmentID = departmentID
	emp.UpdatedAt = at

	next := replace(s.employees, emp, func(e employee.Employee) bool { return e.ID == id })
	if err := commit(ctx, s, KeyEmployees, &s.employees, next); err != nil {
		return employee.Employee{}, err
	}
	s.notify("employees", "assigned", id)
	return emp, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := find(r.store.employees, func(e employee.Employee) bool { return e.ID == id })
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := find(r.store.employees, func(e employee.Employee) bool { return strings.EqualFold(e.Code, code) })
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) List(ctx context.Context, f employee.EmployeeFilter) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := filter(r.store.employees, func(e employee.Employee) bool {
		if f.BranchID != "" && e.BranchID != f.BranchID {
			return false
		}
		if f.DepartmentID != "" && e.DepartmentID != f.DepartmentID {
			return false
		}
		if f.Status != "" && string(e.Status) != f.Status {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Code), search) {
			return false
		}
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := without(s.employees, func(e employee.Employee) bool { return e.ID == id })
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if err := commit(ctx, s, KeyEmployees, &s.employees, next); err != nil {
		return err
	}
	s.notify("employees", "deleted", id)
	return nil
}
