package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/insight"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const payrollPrompt = "حلل بيانات الرواتب التالية وقدم توصيات مختصرة للإدارة: %s"

type InsightServiceImpl struct {
	generator      insight.TextGenerator
	payrollService payroll.PayrollService
	advanceService advance.AdvanceService
}

// NewInsightService accepts a nil generator; every answer is then the
// fallback message.
func NewInsightService(generator insight.TextGenerator, payrollService payroll.PayrollService, advanceService advance.AdvanceService) insight.InsightService {
	return &InsightServiceImpl{
		generator:      generator,
		payrollService: payrollService,
		advanceService: advanceService,
	}
}

func (s *InsightServiceImpl) generate(ctx context.Context, prompt string) insight.InsightResponse {
	if s.generator == nil {
		slog.Warn("Insight requested without a text provider", "error", insight.ErrProviderUnavailable)
		return insight.InsightResponse{Text: insight.FallbackMessage, Fallback: true}
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("Text generation failed", "error", err)
		return insight.InsightResponse{Text: insight.FallbackMessage, Fallback: true}
	}
	return insight.InsightResponse{Text: text}
}

type payrollDigestRow struct {
	Employee    string `json:"employee"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
	Fines       string `json:"fines"`
	Bonuses     string `json:"bonuses"`
	NetSalary   string `json:"net_salary"`
	Status      string `json:"status"`
	Outstanding string `json:"outstanding_advances,omitempty"`
}

func (s *InsightServiceImpl) PayrollInsight(ctx context.Context, month string) (insight.InsightResponse, error) {
	var (
		resp     payroll.MonthResponse
		advances []advance.Advance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		resp, err = s.payrollService.GetMonth(gCtx, payroll.PayrollFilter{Month: month})
		return err
	})

	g.Go(func() error {
		var err error
		advances, err = s.advanceService.ListAdvances(gCtx, advance.AdvanceFilter{Status: string(advance.StatusActive)})
		return err
	})

	if err := g.Wait(); err != nil {
		return insight.InsightResponse{}, err
	}

	outstanding := make(map[string]decimal.Decimal, len(advances))
	for _, a := range advances {
		outstanding[a.EmployeeID] = outstanding[a.EmployeeID].Add(a.RemainingAmount)
	}

	rows := make([]payrollDigestRow, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		row := payrollDigestRow{
			Employee:    e.EmployeeName,
			PresentDays: e.PresentDays,
			AbsentDays:  e.AbsentDays,
			Fines:       e.AutoFines.Add(e.ManualDeduction).String(),
			Bonuses:     e.AutoBonus.Add(e.ManualBonus).String(),
			NetSalary:   e.NetSalary.String(),
			Status:      string(e.Status),
		}
		if remaining, ok := outstanding[e.EmployeeID]; ok {
			row.Outstanding = remaining.String()
		}
		rows = append(rows, row)
	}

	data, err := json.Marshal(struct {
		Month   string                  `json:"month"`
		Summary payroll.SummaryResponse `json:"summary"`
		Rows    []payrollDigestRow      `json:"rows"`
	}{Month: month, Summary: resp.Summary, Rows: rows})
	if err != nil {
		return insight.InsightResponse{}, fmt.Errorf("failed to encode payroll digest: %w", err)
	}

	return s.generate(ctx, fmt.Sprintf(payrollPrompt, data)), nil
}

func (s *InsightServiceImpl) Ask(ctx context.Context, req insight.AskRequest) (insight.InsightResponse, error) {
	if err := req.Validate(); err != nil {
		return insight.InsightResponse{}, err
	}
	return s.generate(ctx, req.Prompt), nil
}
