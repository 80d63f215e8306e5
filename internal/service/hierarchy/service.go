package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/hierarchy"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
)

type HierarchyServiceImpl struct {
	hierarchyRepo hierarchy.HierarchyRepository
	employeeRepo  employee.EmployeeRepository
	now           func() time.Time
}

func NewHierarchyService(hierarchyRepo hierarchy.HierarchyRepository, employeeRepo employee.EmployeeRepository) hierarchy.HierarchyService {
	return &HierarchyServiceImpl{
		hierarchyRepo: hierarchyRepo,
		employeeRepo:  employeeRepo,
		now:           time.Now,
	}
}

func (s *HierarchyServiceImpl) ListBranches(ctx context.Context) ([]hierarchy.BranchResponse, error) {
	branches, err := s.hierarchyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]hierarchy.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, withHeadcount(b, staff))
	}
	return out, nil
}

func (s *HierarchyServiceImpl) GetBranch(ctx context.Context, id string) (hierarchy.BranchResponse, error) {
	b, err := s.hierarchyRepo.GetByID(ctx, id)
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}
	return s.respond(ctx, b)
}

func (s *HierarchyServiceImpl) SaveBranch(ctx context.Context, req hierarchy.SaveBranchRequest) (hierarchy.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return hierarchy.BranchResponse{}, err
	}

	var manager *employee.Employee
	if req.ManagerID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, req.ManagerID)
		if err != nil {
			return hierarchy.BranchResponse{}, err
		}
		manager = &emp
	}

	now := s.now()
	apply := func(b *hierarchy.Branch) error {
		b.Name = req.Name
		b.Location = req.Location
		b.ManagerID, b.ManagerName = "", ""
		if manager != nil {
			b.ManagerID, b.ManagerName = manager.ID, manager.Name
		}
		b.UpdatedAt = now
		return nil
	}

	var (
		saved hierarchy.Branch
		err   error
	)
	if req.ID == "" {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return hierarchy.BranchResponse{}, fmt.Errorf("failed to generate branch id: %w", idErr)
		}
		saved = hierarchy.Branch{ID: id.String(), Departments: []hierarchy.Department{}, CreatedAt: now}
		_ = apply(&saved)
		saved, err = s.hierarchyRepo.Create(ctx, saved)
	} else {
		saved, err = s.hierarchyRepo.Update(ctx, req.ID, apply)
	}
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}

	if manager != nil {
		// a manager moved in from another branch leaves their old department
		deptID := manager.DepartmentID
		if manager.BranchID != saved.ID {
			deptID = ""
		}
		if _, err := s.employeeRepo.Assign(ctx, manager.ID, employee.RoleBranchManager, saved.ID, deptID, now); err != nil {
			return hierarchy.BranchResponse{}, fmt.Errorf("failed to assign branch manager: %w", err)
		}
		slog.Info("Branch manager assigned", "branch_id", saved.ID, "employee_id", manager.ID)
	}
	return s.respond(ctx, saved)
}

// DeleteBranch removes the branch with its departments. Employees keep their
// branch and department ids.
func (s *HierarchyServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	return s.hierarchyRepo.Delete(ctx, id)
}

func (s *HierarchyServiceImpl) SaveDepartment(ctx context.Context, req hierarchy.SaveDepartmentRequest) (hierarchy.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return hierarchy.BranchResponse{}, err
	}

	var supervisor *employee.Employee
	if req.SupervisorID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, req.SupervisorID)
		if err != nil {
			return hierarchy.BranchResponse{}, err
		}
		supervisor = &emp
	}

	deptID := req.ID
	if deptID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return hierarchy.BranchResponse{}, fmt.Errorf("failed to generate department id: %w", err)
		}
		deptID = id.String()
	}

	now := s.now()
	saved, err := s.hierarchyRepo.Update(ctx, req.BranchID, func(b *hierarchy.Branch) error {
		idx := b.Department(deptID)
		if idx < 0 {
			if req.ID != "" {
				return hierarchy.ErrDepartmentNotFound
			}
			b.Departments = append(b.Departments, hierarchy.Department{ID: deptID, Positions: []string{}})
			idx = len(b.Departments) - 1
		}

		d := &b.Departments[idx]
		d.Name = req.Name
		d.SupervisorID, d.SupervisorName = "", ""
		if supervisor != nil {
			d.SupervisorID, d.SupervisorName = supervisor.ID, supervisor.Name
		}
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}

	if supervisor != nil {
		if _, err := s.employeeRepo.Assign(ctx, supervisor.ID, employee.RoleDeptSupervisor, saved.ID, deptID, now); err != nil {
			return hierarchy.BranchResponse{}, fmt.Errorf("failed to assign department supervisor: %w", err)
		}
		slog.Info("Department supervisor assigned", "branch_id", saved.ID, "department_id", deptID, "employee_id", supervisor.ID)
	}
	return s.respond(ctx, saved)
}

func (s *HierarchyServiceImpl) DeleteDepartment(ctx context.Context, branchID, departmentID string) (hierarchy.BranchResponse, error) {
	saved, err := s.hierarchyRepo.Update(ctx, branchID, func(b *hierarchy.Branch) error {
		idx := b.Department(departmentID)
		if idx < 0 {
			return hierarchy.ErrDepartmentNotFound
		}
		b.Departments = append(b.Departments[:idx], b.Departments[idx+1:]...)
		b.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}
	return s.respond(ctx, saved)
}

func (s *HierarchyServiceImpl) AddPosition(ctx context.Context, req hierarchy.PositionRequest) (hierarchy.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return hierarchy.BranchResponse{}, err
	}

	saved, err := s.hierarchyRepo.Update(ctx, req.BranchID, func(b *hierarchy.Branch) error {
		idx := b.Department(req.DepartmentID)
		if idx < 0 {
			return hierarchy.ErrDepartmentNotFound
		}
		d := &b.Departments[idx]
		if validator.IsInSlice(req.Name, d.Positions) {
			return hierarchy.ErrPositionExists
		}
		d.Positions = append(d.Positions, req.Name)
		b.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}
	return s.respond(ctx, saved)
}

func (s *HierarchyServiceImpl) RemovePosition(ctx context.Context, req hierarchy.PositionRequest) (hierarchy.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return hierarchy.BranchResponse{}, err
	}

	saved, err := s.hierarchyRepo.Update(ctx, req.BranchID, func(b *hierarchy.Branch) error {
		idx := b.Department(req.DepartmentID)
		if idx < 0 {
			return hierarchy.ErrDepartmentNotFound
		}
		d := &b.Departments[idx]
		if !validator.IsInSlice(req.Name, d.Positions) {
			return hierarchy.ErrPositionNotFound
		}
		kept := make([]string, 0, len(d.Positions)-1)
		for _, p := range d.Positions {
			if p != req.Name {
				kept = append(kept, p)
			}
		}
		d.Positions = kept
		b.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}
	return s.respond(ctx, saved)
}

func (s *HierarchyServiceImpl) respond(ctx context.Context, b hierarchy.Branch) (hierarchy.BranchResponse, error) {
	staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{BranchID: b.ID})
	if err != nil {
		return hierarchy.BranchResponse{}, err
	}
	return withHeadcount(b, staff), nil
}

func withHeadcount(b hierarchy.Branch, staff []employee.Employee) hierarchy.BranchResponse {
	resp := hierarchy.BranchResponse{Branch: b, Headcount: make(map[string]int, len(b.Departments))}
	for _, d := range b.Departments {
		resp.Headcount[d.ID] = 0
	}
	for _, e := range staff {
		if e.BranchID != b.ID {
			continue
		}
		resp.EmployeeCount++
		if _, ok := resp.Headcount[e.DepartmentID]; ok {
			resp.Headcount[e.DepartmentID]++
		}
	}
	return resp
}
