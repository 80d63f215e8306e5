package evaluation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/evaluation"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
)

type EvaluationServiceImpl struct {
	criteriaRepo   evaluation.CriteriaRepository
	evaluationRepo evaluation.EvaluationRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewEvaluationService(
	criteriaRepo evaluation.CriteriaRepository,
	evaluationRepo evaluation.EvaluationRepository,
	employeeRepo employee.EmployeeRepository,
) evaluation.EvaluationService {
	return &EvaluationServiceImpl{
		criteriaRepo:   criteriaRepo,
		evaluationRepo: evaluationRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WeightedScore is the weighted mean of scores on the 0-10 scale, expressed
// out of 100 and rounded to one decimal. Scores for unknown criteria are
// ignored; no usable weight gives 0.
func WeightedScore(scores []evaluation.Score, criteria []evaluation.Criteria) float64 {
	weights := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		weights[c.ID] = c.Weight
	}

	var weighted, total float64
	for _, s := range scores {
		w, ok := weights[s.CriteriaID]
		if !ok {
			continue
		}
		weighted += s.Score * w
		total += w
	}
	if total <= 0 {
		return 0
	}
	return round1(weighted / total * 10)
}

func (s *EvaluationServiceImpl) CreateCriteria(ctx context.Context, req evaluation.CreateCriteriaRequest) (evaluation.Criteria, error) {
	if err := req.Validate(); err != nil {
		return evaluation.Criteria{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return evaluation.Criteria{}, fmt.Errorf("failed to generate criteria id: %w", err)
	}

	created, err := s.criteriaRepo.Upsert(ctx, evaluation.Criteria{
		ID:           id.String(),
		Name:         req.Name,
		Description:  req.Description,
		Weight:       req.Weight,
		BranchID:     req.BranchID,
		DepartmentID: req.DepartmentID,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return evaluation.Criteria{}, fmt.Errorf("failed to create criteria: %w", err)
	}
	return created, nil
}

func (s *EvaluationServiceImpl) UpdateCriteria(ctx context.Context, req evaluation.UpdateCriteriaRequest) (evaluation.Criteria, error) {
	if err := req.Validate(); err != nil {
		return evaluation.Criteria{}, err
	}

	updated, err := s.criteriaRepo.Update(ctx, evaluation.Criteria{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Weight:       req.Weight,
		BranchID:     req.BranchID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return evaluation.Criteria{}, fmt.Errorf("failed to update criteria: %w", err)
	}
	return updated, nil
}

func (s *EvaluationServiceImpl) ListCriteria(ctx context.Context) ([]evaluation.Criteria, error) {
	return s.criteriaRepo.List(ctx)
}

func (s *EvaluationServiceImpl) DeleteCriteria(ctx context.Context, id string) error {
	return s.criteriaRepo.Delete(ctx, id)
}

// evaluator resolves the signed-in employee, if any.
func (s *EvaluationServiceImpl) evaluator(ctx context.Context) (id, name string) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "system", "system"
	}
	id, _ = claims["employee_id"].(string)
	if id == "" {
		return "system", "system"
	}
	if emp, err := s.employeeRepo.GetByID(ctx, id); err == nil {
		return id, emp.Name
	}
	return id, id
}

func (s *EvaluationServiceImpl) CreateEvaluation(ctx context.Context, req evaluation.CreateEvaluationRequest) (evaluation.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return evaluation.Evaluation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return evaluation.Evaluation{}, err
	}

	criteria, err := s.criteriaRepo.List(ctx)
	if err != nil {
		return evaluation.Evaluation{}, fmt.Errorf("failed to list criteria: %w", err)
	}

	scores := make([]evaluation.Score, 0, len(req.Scores))
	for _, sc := range req.Scores {
		scores = append(scores, evaluation.Score{CriteriaID: sc.CriteriaID, Score: sc.Score})
	}

	now := s.now()
	date := req.Date
	if date == "" {
		date = now.Format(timeutil.DateLayout)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return evaluation.Evaluation{}, fmt.Errorf("failed to generate evaluation id: %w", err)
	}
	evaluatorID, evaluatorName := s.evaluator(ctx)

	created, err := s.evaluationRepo.Upsert(ctx, evaluation.Evaluation{
		ID:            id.String(),
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		EvaluatorID:   evaluatorID,
		EvaluatorName: evaluatorName,
		Date:          date,
		Scores:        scores,
		TotalScore:    WeightedScore(scores, criteria),
		Comments:      req.Comments,
		BranchID:      emp.BranchID,
		DepartmentID:  emp.DepartmentID,
		CreatedAt:     now,
	})
	if err != nil {
		return evaluation.Evaluation{}, fmt.Errorf("failed to create evaluation: %w", err)
	}
	return created, nil
}

func (s *EvaluationServiceImpl) ListEvaluations(ctx context.Context, filter evaluation.EvaluationFilter) ([]evaluation.Evaluation, error) {
	return s.evaluationRepo.List(ctx, filter)
}

func (s *EvaluationServiceImpl) Report(ctx context.Context, filter evaluation.EvaluationFilter) ([]evaluation.ReportRow, error) {
	evaluations, err := s.evaluationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	type acc struct {
		row      evaluation.ReportRow
		total    float64
		criteria map[string]float64
	}
	byEmployee := make(map[string]*acc)
	order := make([]string, 0)

	for _, ev := range evaluations {
		a, ok := byEmployee[ev.EmployeeID]
		if !ok {
			a = &acc{
				row:      evaluation.ReportRow{EmployeeID: ev.EmployeeID, EmployeeName: ev.EmployeeName},
				criteria: make(map[string]float64),
			}
			byEmployee[ev.EmployeeID] = a
			order = append(order, ev.EmployeeID)
		}
		a.row.EvaluationCount++
		a.total += ev.TotalScore
		for _, sc := range ev.Scores {
			a.criteria[sc.CriteriaID] += sc.Score
		}
		if ev.Date > a.row.LatestDate {
			a.row.LatestDate = ev.Date
		}
	}

	rows := make([]evaluation.ReportRow, 0, len(order))
	for _, id := range order {
		a := byEmployee[id]
		n := float64(a.row.EvaluationCount)
		a.row.AverageTotal = round1(a.total / n)
		a.row.AverageCriteria = make(map[string]float64, len(a.criteria))
		for cid, sum := range a.criteria {
			a.row.AverageCriteria[cid] = round1(sum / n)
		}
		rows = append(rows, a.row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AverageTotal > rows[j].AverageTotal })
	return rows, nil
}
