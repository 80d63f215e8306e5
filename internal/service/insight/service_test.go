package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/madar-hris/hrms-backend-go/internal/domain/advance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/insight"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
	advanceService "github.com/madar-hris/hrms-backend-go/internal/service/advance"
	payrollService "github.com/madar-hris/hrms-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func newTestService(t *testing.T, gen insight.TextGenerator) insight.InsightService {
	t.Helper()
	ctx := context.Background()
	store, err := state.Open(ctx, storage.NewMemoryStorage(), nil)
	require.NoError(t, err)

	employees := state.NewEmployeeRepository(store)
	_, err = employees.Create(ctx, employee.Employee{ID: "e1", Code: "EMP-001", Name: "Hassan Ali", Salary: decimal.NewFromInt(1500000)})
	require.NoError(t, err)

	payroll := payrollService.NewPayrollService(
		state.NewPayrollRepository(store), employees,
		state.NewAttendanceRepository(store), state.NewRewardRepository(store),
	)
	advances := advanceService.NewAdvanceService(state.NewAdvanceRepository(store), employees)
	_, err = advances.CreateAdvance(ctx, advance.CreateAdvanceRequest{
		EmployeeID:         "e1",
		TotalAmount:        decimal.NewFromInt(300000),
		MonthlyInstallment: decimal.NewFromInt(100000),
		StartDate:          "2024-05-01",
	})
	require.NoError(t, err)

	return NewInsightService(gen, payroll, advances)
}

func TestInsightService_PayrollInsight(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{text: "الرواتب مستقرة"}
	svc := newTestService(t, gen)

	resp, err := svc.PayrollInsight(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "الرواتب مستقرة", resp.Text)
	assert.False(t, resp.Fallback)

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.Contains(gen.prompts[0], "Hassan Ali"))
	assert.True(t, strings.Contains(gen.prompts[0], `"month":"2024-05"`))
	assert.True(t, strings.Contains(gen.prompts[0], `"outstanding_advances":"300000"`))

	_, err = svc.PayrollInsight(ctx, "2024/05")
	assert.Error(t, err)
}

func TestInsightService_Fallback(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		gen  insight.TextGenerator
	}{
		{"no provider", nil},
		{"provider error", &stubGenerator{err: errors.New("quota exceeded")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.gen)
			resp, err := svc.Ask(ctx, insight.AskRequest{Prompt: "كم عدد الموظفين؟"})
			require.NoError(t, err)
			assert.True(t, resp.Fallback)
			assert.Equal(t, insight.FallbackMessage, resp.Text)
		})
	}

	svc := newTestService(t, nil)
	_, err := svc.Ask(ctx, insight.AskRequest{})
	assert.Error(t, err)
}
