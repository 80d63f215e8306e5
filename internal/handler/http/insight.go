package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/insight"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

type InsightHandler interface {
	PayrollInsight(w http.ResponseWriter, r *http.Request)
	Ask(w http.ResponseWriter, r *http.Request)
}

type insightHandlerImpl struct {
	insightService insight.InsightService
}

func NewInsightHandler(insightService insight.InsightService) InsightHandler {
	return &insightHandlerImpl{insightService: insightService}
}

// PayrollInsight returns the assistant's reading of a payroll month.
// Provider failures still answer 200 with the fallback text.
func (h *insightHandlerImpl) PayrollInsight(w http.ResponseWriter, r *http.Request) {
	result, err := h.insightService.PayrollInsight(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *insightHandlerImpl) Ask(w http.ResponseWriter, r *http.Request) {
	var req insight.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.insightService.Ask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
