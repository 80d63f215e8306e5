package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

type RewardHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type rewardHandlerImpl struct {
	rewardService reward.RewardService
}

func NewRewardHandler(rewardService reward.RewardService) RewardHandler {
	return &rewardHandlerImpl{rewardService: rewardService}
}

// Create records a manual bonus or deduction
func (h *rewardHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req reward.CreateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rewardService.CreateReward(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reward recorded", result)
}

func (h *rewardHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := reward.RewardFilter{
		EmployeeID: q.Get("employee_id"),
		Type:       q.Get("type"),
		Status:     q.Get("status"),
		Source:     q.Get("source"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		Month:      q.Get("month"),
		Search:     q.Get("search"),
	}

	result, err := h.rewardService.ListRewards(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Report(w, result, len(result.Rewards), response.Meta{Month: filter.Month})
}

func (h *rewardHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reward ID is required", nil)
		return
	}

	result, err := h.rewardService.CancelReward(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reward cancelled", result)
}
