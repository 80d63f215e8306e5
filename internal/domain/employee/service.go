package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee stores a new employee and derives its hourly rate
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee replaces the editable fields and re-derives the hourly rate
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	// Authenticate checks an employee code and password pair
	Authenticate(ctx context.Context, code, password string) (Employee, error)
}
