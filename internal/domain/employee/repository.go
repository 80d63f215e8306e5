package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)

	// Assign places the employee in a branch and department and, unless they
	// are a super-admin, gives them role
	Assign(ctx context.Context, id string, role Role, branchID, departmentID string, at time.Time) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Delete(ctx context.Context, id string) error
}
