package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	scheduleService "github.com/madar-hris/hrms-backend-go/internal/service/schedule"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// applyRequest copies the editable fields onto emp and re-derives the hourly rate.
func applyRequest(emp *employee.Employee, req employee.CreateEmployeeRequest) {
	emp.Code = strings.TrimSpace(req.Code)
	emp.Name = strings.TrimSpace(req.Name)
	emp.Email = req.Email
	emp.Phone = req.Phone
	emp.BranchID = req.BranchID
	emp.DepartmentID = req.DepartmentID
	emp.Position = req.Position
	emp.Level = req.Level
	emp.HireDate = req.HireDate
	emp.Salary = req.Salary
	emp.CheckInTime = req.CheckInTime
	emp.CheckOutTime = req.CheckOutTime
	emp.GracePeriodMinutes = req.GracePeriodMinutes
	emp.AllowLateEntry = req.AllowLateEntry
	emp.LateFineAmount = req.LateFineAmount
	emp.AllowEarlyExit = req.AllowEarlyExit
	emp.EarlyExitGracePeriod = req.EarlyExitGracePeriod
	emp.EarlyExitFineAmount = req.EarlyExitFineAmount
	emp.AllowOvertime = req.AllowOvertime
	emp.AutoCheckOutEnabled = req.AutoCheckOutEnabled
	emp.AutoCheckOutAfterMinutes = req.AutoCheckOutAfterMinutes

	if req.Role != "" {
		emp.Role = employee.Role(req.Role)
	} else if emp.Role == "" {
		emp.Role = employee.RoleEmployee
	}
	if req.Status != "" {
		emp.Status = employee.Status(req.Status)
	} else if emp.Status == "" {
		emp.Status = employee.StatusActive
	}

	// No explicit table means the nominal shift Sunday to Thursday
	emp.WorkingDays = req.ToWorkingDays()
	if emp.WorkingDays == nil {
		emp.WorkingDays = employee.DefaultWorkingDays(req.CheckInTime, req.CheckOutTime)
	}
	emp.HourlyRate = scheduleService.ComputeHourlyRate(emp.Salary, emp.WorkingDays)
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Check if employee code already exists
	if _, err := s.employeeRepo.GetByCode(ctx, req.Code); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	newEmployee := employee.Employee{
		ID:           id.String(),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyRequest(&newEmployee, req)

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "code", created.Code, "hourly_rate", created.HourlyRate.String())
	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Password != "" {
		existing.PasswordHash, err = hashPassword(req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	applyRequest(&existing, req.CreateEmployeeRequest)
	existing.UpdatedAt = s.now()

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeCodeExists) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) Authenticate(ctx context.Context, code, password string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrInvalidCredentials
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if emp.PasswordHash == "" || emp.Status == employee.StatusTerminated {
		return employee.Employee{}, employee.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return employee.Employee{}, employee.ErrInvalidCredentials
	}
	return emp, nil
}
