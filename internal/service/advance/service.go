package advance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
)

type AdvanceServiceImpl struct {
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewAdvanceService(advanceRepo advance.AdvanceRepository, employeeRepo employee.EmployeeRepository) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *AdvanceServiceImpl) CreateAdvance(ctx context.Context, req advance.CreateAdvanceRequest) (advance.Advance, error) {
	if err := req.Validate(); err != nil {
		return advance.Advance{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return advance.Advance{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to generate advance id: %w", err)
	}

	now := s.now()
	created, err := s.advanceRepo.Upsert(ctx, advance.Advance{
		ID:                 id.String(),
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		TotalAmount:        req.TotalAmount,
		MonthlyInstallment: req.MonthlyInstallment,
		RemainingAmount:    req.TotalAmount,
		StartDate:          req.StartDate,
		Status:             advance.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return created, nil
}

func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, filter advance.AdvanceFilter) ([]advance.Advance, error) {
	return s.advanceRepo.List(ctx, filter)
}

func (s *AdvanceServiceImpl) RejectAdvance(ctx context.Context, id string) (advance.Advance, error) {
	existing, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.Advance{}, err
	}
	if existing.Status != advance.StatusActive || len(existing.Installments) > 0 {
		return advance.Advance{}, advance.ErrAdvanceNotActive
	}

	existing.Status = advance.StatusRejected
	existing.UpdatedAt = s.now()
	return s.advanceRepo.Upsert(ctx, existing)
}

// RecordInstallment implements advance.AdvanceService. A payment larger than
// the remaining amount is capped to it.
func (s *AdvanceServiceImpl) RecordInstallment(ctx context.Context, req advance.InstallmentRequest) (advance.Advance, error) {
	if err := req.Validate(); err != nil {
		return advance.Advance{}, err
	}

	existing, err := s.advanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return advance.Advance{}, err
	}
	if existing.Status != advance.StatusActive {
		return advance.Advance{}, advance.ErrAdvanceNotActive
	}

	amount := req.Amount
	if amount.IsZero() {
		amount = existing.MonthlyInstallment
	}
	if amount.GreaterThan(existing.RemainingAmount) {
		amount = existing.RemainingAmount
	}

	existing.Installments = append(existing.Installments, advance.Installment{Date: req.Date, Amount: amount})
	existing.RemainingAmount = existing.RemainingAmount.Sub(amount)
	if !existing.RemainingAmount.IsPositive() {
		existing.Status = advance.StatusCompleted
		slog.Info("Advance repaid", "advance_id", existing.ID, "employee_id", existing.EmployeeID)
	}
	existing.UpdatedAt = s.now()

	updated, err := s.advanceRepo.Upsert(ctx, existing)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to record installment: %w", err)
	}
	return updated, nil
}
