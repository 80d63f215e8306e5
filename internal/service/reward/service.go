package reward

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/shopspring/decimal"
)

// SystemActor is recorded as author of writes made without a signed-in employee.
const SystemActor = "system"

type RewardServiceImpl struct {
	rewardRepo   reward.RewardRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewRewardService(rewardRepo reward.RewardRepository, employeeRepo employee.EmployeeRepository) reward.RewardService {
	return &RewardServiceImpl{
		rewardRepo:   rewardRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Helper function to extract the acting employee from context
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return SystemActor
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return employeeID
	}
	return SystemActor
}

func (s *RewardServiceImpl) CreateReward(ctx context.Context, req reward.CreateRewardRequest) (reward.Reward, error) {
	if err := req.Validate(); err != nil {
		return reward.Reward{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return reward.Reward{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return reward.Reward{}, fmt.Errorf("failed to generate reward id: %w", err)
	}

	now := s.now()
	created, err := s.rewardRepo.Upsert(ctx, reward.Reward{
		ID:           id.String(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         reward.Type(req.Type),
		Amount:       req.Amount,
		Reason:       req.Reason,
		Date:         req.Date,
		Status:       reward.StatusApproved,
		Source:       reward.SourceManual,
		CreatedBy:    actorFromContext(ctx),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return reward.Reward{}, fmt.Errorf("failed to create reward: %w", err)
	}
	return created, nil
}

func (s *RewardServiceImpl) CancelReward(ctx context.Context, id string) (reward.Reward, error) {
	existing, err := s.rewardRepo.GetByID(ctx, id)
	if err != nil {
		return reward.Reward{}, err
	}
	if existing.Source == reward.SourceAutomatic {
		return reward.Reward{}, reward.ErrAutomaticReadOnly
	}
	if existing.Status == reward.StatusCancelled {
		return reward.Reward{}, reward.ErrRewardAlreadyCancelled
	}

	existing.Status = reward.StatusCancelled
	existing.UpdatedAt = s.now()
	updated, err := s.rewardRepo.Upsert(ctx, existing)
	if err != nil {
		return reward.Reward{}, fmt.Errorf("failed to cancel reward: %w", err)
	}
	return updated, nil
}

func (s *RewardServiceImpl) ListRewards(ctx context.Context, filter reward.RewardFilter) (reward.ListRewardResponse, error) {
	rewards, err := s.rewardRepo.List(ctx, filter)
	if err != nil {
		return reward.ListRewardResponse{}, fmt.Errorf("failed to list rewards: %w", err)
	}

	resp := reward.ListRewardResponse{
		Rewards:        rewards,
		TotalBonus:     decimal.Zero,
		TotalDeduction: decimal.Zero,
	}
	for _, r := range rewards {
		if !r.Counts() {
			continue
		}
		switch r.Type {
		case reward.TypeBonus:
			resp.TotalBonus = resp.TotalBonus.Add(r.Amount)
		case reward.TypeDeduction:
			resp.TotalDeduction = resp.TotalDeduction.Add(r.Amount)
		}
	}
	return resp, nil
}

// SyncAutomatic makes the stored automatic records of one day match
// adjustments. A positive amount is written under the deterministic ID of its
// kind; a zero amount cancels what an earlier evaluation of the day wrote.
func (s *RewardServiceImpl) SyncAutomatic(ctx context.Context, employeeID, employeeName, date string, adjustments []reward.Adjustment) error {
	now := s.now()

	for _, adj := range adjustments {
		id := reward.AutomaticID(employeeID, date, adj.Kind)

		existing, err := s.rewardRepo.GetByID(ctx, id)
		found := err == nil
		if err != nil && !errors.Is(err, reward.ErrRewardNotFound) {
			return fmt.Errorf("failed to get automatic reward %s: %w", id, err)
		}

		if !adj.Amount.IsPositive() {
			if !found || existing.Status == reward.StatusCancelled {
				continue
			}
			existing.Status = reward.StatusCancelled
			existing.UpdatedAt = now
			if _, err := s.rewardRepo.Upsert(ctx, existing); err != nil {
				return fmt.Errorf("failed to cancel automatic reward %s: %w", id, err)
			}
			continue
		}

		createdAt := now
		if found {
			createdAt = existing.CreatedAt
		}
		_, err = s.rewardRepo.Upsert(ctx, reward.Reward{
			ID:           id,
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			Type:         adj.Kind.Type(),
			Amount:       adj.Amount,
			Reason:       adj.Kind.Reason(),
			Date:         date,
			Status:       reward.StatusApproved,
			Source:       reward.SourceAutomatic,
			Kind:         adj.Kind,
			CreatedBy:    SystemActor,
			CreatedAt:    createdAt,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to write automatic reward %s: %w", id, err)
		}
		slog.Debug("Automatic adjustment synced", "id", id, "amount", adj.Amount.String())
	}
	return nil
}
