package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/sse"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
	advanceService "github.com/madar-hris/hrms-backend-go/internal/service/advance"
	attendanceService "github.com/madar-hris/hrms-backend-go/internal/service/attendance"
	authService "github.com/madar-hris/hrms-backend-go/internal/service/auth"
	employeeService "github.com/madar-hris/hrms-backend-go/internal/service/employee"
	evaluationService "github.com/madar-hris/hrms-backend-go/internal/service/evaluation"
	hierarchyService "github.com/madar-hris/hrms-backend-go/internal/service/hierarchy"
	insightService "github.com/madar-hris/hrms-backend-go/internal/service/insight"
	payrollService "github.com/madar-hris/hrms-backend-go/internal/service/payroll"
	rewardService "github.com/madar-hris/hrms-backend-go/internal/service/reward"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
	adminToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	hub := sse.NewHub()
	store, err := state.Open(ctx, storage.NewMemoryStorage(), hub)
	require.NoError(t, err)

	employeeRepo := state.NewEmployeeRepository(store)
	attendanceRepo := state.NewAttendanceRepository(store)
	rewardRepo := state.NewRewardRepository(store)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	employees := employeeService.NewEmployeeService(employeeRepo)
	rewards := rewardService.NewRewardService(rewardRepo, employeeRepo)
	payrolls := payrollService.NewPayrollService(state.NewPayrollRepository(store), employeeRepo, attendanceRepo, rewardRepo)
	advances := advanceService.NewAdvanceService(state.NewAdvanceRepository(store), employeeRepo)

	router := NewRouter(RouterOptions{Env: "test", Version: "test", LogLevel: slog.LevelError}, jwtSvc, Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(employees, jwtSvc), employees),
		Employee:   NewEmployeeHandler(employees),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, rewards)),
		Reward:     NewRewardHandler(rewards),
		Payroll:    NewPayrollHandler(payrolls),
		Advance:    NewAdvanceHandler(advances),
		Evaluation: NewEvaluationHandler(evaluationService.NewEvaluationService(
			state.NewCriteriaRepository(store), state.NewEvaluationRepository(store), employeeRepo)),
		Hierarchy: NewHierarchyHandler(hierarchyService.NewHierarchyService(state.NewHierarchyRepository(store), employeeRepo)),
		Insight:   NewInsightHandler(insightService.NewInsightService(nil, payrolls, advances)),
		Events:    NewEventsHandler(hub, jwtSvc),
	})

	_, err = employees.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Code:         "ADM-01",
		Name:         "Layla Hussein",
		Password:     "admin-pass",
		Role:         string(employee.RoleSuperAdmin),
		Salary:       decimal.NewFromInt(3000000),
		CheckInTime:  "08:00",
		CheckOutTime: "16:00",
	})
	require.NoError(t, err)

	srv := &testServer{router: router, jwtService: jwtSvc}

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"code": "ADM-01", "password": "admin-pass"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, rec, &login)
	srv.adminToken = login.AccessToken

	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestRouter_Login(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"wrong password", map[string]string{"code": "ADM-01", "password": "nope"}, http.StatusUnauthorized},
		{"missing code", map[string]string{"password": "admin-pass"}, http.StatusUnprocessableEntity},
		{"malformed body", "not-an-object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeData(t, rec, nil)
			assert.False(t, env.Success)
		})
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/employees", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sseToken, _, err := srv.jwtService.GenerateSSEToken("someone")
	require.NoError(t, err)
	rec = srv.do(t, http.MethodGet, "/api/v1/employees", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AttendanceToPayroll(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/employees", srv.adminToken, map[string]interface{}{
		"code":                 "EMP-010",
		"name":                 "Omar Jassim",
		"salary":               "1500000",
		"check_in_time":        "08:00",
		"check_out_time":       "16:00",
		"grace_period_minutes": 15,
		"late_fine_amount":     "5000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var emp struct {
		ID         string `json:"id"`
		HourlyRate string `json:"hourly_rate"`
	}
	decodeData(t, rec, &emp)
	assert.Equal(t, "8661", emp.HourlyRate)

	// 2024-05-05 is a Sunday
	rec = srv.do(t, http.MethodPost, "/api/v1/attendance", srv.adminToken, map[string]string{
		"employee_id": emp.ID,
		"date":        "2024-05-05",
		"check_in":    "08:30",
		"check_out":   "16:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var att struct {
		Status          string `json:"status"`
		DelayMinutes    int    `json:"delay_minutes"`
		DeductionAmount string `json:"deduction_amount"`
	}
	decodeData(t, rec, &att)
	assert.Equal(t, "late", att.Status)
	assert.Equal(t, 15, att.DelayMinutes)
	assert.Equal(t, "5000", att.DeductionAmount)

	rec = srv.do(t, http.MethodGet, "/api/v1/rewards?month=2024-05&source=automatic", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rewards struct {
		TotalDeduction string `json:"total_deduction"`
	}
	decodeData(t, rec, &rewards)
	assert.Equal(t, "5000", rewards.TotalDeduction)

	rec = srv.do(t, http.MethodGet, "/api/v1/attendance/stats?date=2024-05-05", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total int `json:"total"`
		Late  int `json:"late"`
	}
	decodeData(t, rec, &stats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Late)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll/2024-05", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var month struct {
		Entries []struct {
			ID          string `json:"id"`
			EmployeeID  string `json:"employee_id"`
			PresentDays int    `json:"present_days"`
			Status      string `json:"status"`
		} `json:"entries"`
	}
	decodeData(t, rec, &month)
	require.Len(t, month.Entries, 2)

	entryID := "pay-" + emp.ID + "-2024-05"
	var found bool
	for _, e := range month.Entries {
		if e.ID == entryID {
			found = true
			assert.Equal(t, 1, e.PresentDays)
			assert.Equal(t, "pending-review", e.Status)
		}
	}
	require.True(t, found)

	// A plain employee token cannot settle payroll
	employeeToken, _, err := srv.jwtService.GenerateAccessToken(jwt.Subject{
		EmployeeID: emp.ID,
		Code:       "EMP-010",
		Role:       string(employee.RoleEmployee),
	})
	require.NoError(t, err)
	rec = srv.do(t, http.MethodPost, "/api/v1/payroll/entries/"+entryID+"/pay", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/payroll/entries/"+entryID+"/pay", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/payroll/entries/"+entryID+"/pay", srv.adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/payroll/entries/"+entryID+"/reverse", srv.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll/2024-05/export", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2024-05.xlsx")

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll/2024-05/insight", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var insightResp struct {
		Fallback bool `json:"fallback"`
	}
	decodeData(t, rec, &insightResp)
	assert.True(t, insightResp.Fallback)
}

func TestRouter_EmployeeRoles(t *testing.T) {
	srv := newTestServer(t)

	employeeToken, _, err := srv.jwtService.GenerateAccessToken(jwt.Subject{
		EmployeeID: "emp-x",
		Role:       string(employee.RoleEmployee),
	})
	require.NoError(t, err)

	body := map[string]interface{}{
		"code": "EMP-020", "name": "Noor", "check_in_time": "08:00", "check_out_time": "16:00",
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/employees", employeeToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/employees", srv.adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/employees", srv.adminToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/employees?search=noor", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []struct {
		Code string `json:"code"`
	}
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "EMP-020", list[0].Code)
}

func TestRouter_Logout(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/auth/me", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/logout", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/auth/me", srv.adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Hierarchy(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/employees", srv.adminToken, map[string]interface{}{
		"code": "EMP-030", "name": "Khalid Amer", "check_in_time": "08:00", "check_out_time": "16:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var manager struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &manager)

	rec = srv.do(t, http.MethodPost, "/api/v1/hierarchy/branches", srv.adminToken, map[string]string{
		"name": "Basra", "location": "Ashar", "manager_id": manager.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var branch struct {
		ID            string `json:"id"`
		ManagerName   string `json:"manager_name"`
		EmployeeCount int    `json:"employee_count"`
	}
	decodeData(t, rec, &branch)
	assert.Equal(t, "Khalid Amer", branch.ManagerName)
	assert.Equal(t, 1, branch.EmployeeCount)

	rec = srv.do(t, http.MethodGet, "/api/v1/employees/"+manager.ID, srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var promoted struct {
		Role     string `json:"role"`
		BranchID string `json:"branch_id"`
	}
	decodeData(t, rec, &promoted)
	assert.Equal(t, string(employee.RoleBranchManager), promoted.Role)
	assert.Equal(t, branch.ID, promoted.BranchID)

	ownManager, _, err := srv.jwtService.GenerateAccessToken(jwt.Subject{
		EmployeeID: manager.ID, Role: string(employee.RoleBranchManager), BranchID: branch.ID,
	})
	require.NoError(t, err)
	otherManager, _, err := srv.jwtService.GenerateAccessToken(jwt.Subject{
		EmployeeID: "emp-y", Role: string(employee.RoleBranchManager), BranchID: "elsewhere",
	})
	require.NoError(t, err)
	plain, _, err := srv.jwtService.GenerateAccessToken(jwt.Subject{EmployeeID: "emp-z", Role: string(employee.RoleEmployee)})
	require.NoError(t, err)

	departments := "/api/v1/hierarchy/branches/" + branch.ID + "/departments"
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       interface{}
		wantStatus int
	}{
		{"employee cannot add a branch", http.MethodPost, "/api/v1/hierarchy/branches", plain, map[string]string{"name": "X"}, http.StatusForbidden},
		{"manager cannot add a branch", http.MethodPost, "/api/v1/hierarchy/branches", ownManager, map[string]string{"name": "X"}, http.StatusForbidden},
		{"anyone signed in can read", http.MethodGet, "/api/v1/hierarchy/branches", plain, nil, http.StatusOK},
		{"other branch manager", http.MethodPost, departments, otherManager, map[string]string{"name": "Sales"}, http.StatusForbidden},
		{"own branch manager", http.MethodPost, departments, ownManager, map[string]string{"name": "Sales"}, http.StatusCreated},
		{"missing name", http.MethodPost, departments, ownManager, map[string]string{}, http.StatusUnprocessableEntity},
		{"unknown branch", http.MethodPost, "/api/v1/hierarchy/branches/nope/departments", srv.adminToken, map[string]string{"name": "Sales"}, http.StatusNotFound},
		{"unknown department", http.MethodDelete, departments + "/nope", srv.adminToken, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/hierarchy/branches/"+branch.ID, plain, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored struct {
		Departments []struct {
			ID string `json:"id"`
		} `json:"departments"`
	}
	decodeData(t, rec, &stored)
	require.Len(t, stored.Departments, 1)
	positions := departments + "/" + stored.Departments[0].ID + "/positions"

	rec = srv.do(t, http.MethodPost, positions, ownManager, map[string]string{"name": "Field Agent"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = srv.do(t, http.MethodPost, positions, ownManager, map[string]string{"name": "Field Agent"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = srv.do(t, http.MethodDelete, positions+"/Field%20Agent", ownManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = srv.do(t, http.MethodDelete, positions+"/Field%20Agent", ownManager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/hierarchy/branches/"+branch.ID, srv.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UpdateCriteria(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/evaluations/criteria", srv.adminToken, map[string]interface{}{"name": "Quality", "weight": 40})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)

	rec = srv.do(t, http.MethodPut, "/api/v1/evaluations/criteria/"+created.ID, srv.adminToken, map[string]interface{}{"name": "Craft", "weight": 60})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	}
	decodeData(t, rec, &updated)
	assert.Equal(t, "Craft", updated.Name)
	assert.InDelta(t, 60.0, updated.Weight, 1e-9)

	rec = srv.do(t, http.MethodPut, "/api/v1/evaluations/criteria/nope", srv.adminToken, map[string]interface{}{"name": "Craft", "weight": 60})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/evaluations/criteria", srv.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meta struct {
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 1, meta.Meta.Total)
}

func TestRouter_EventStreamGreeting(t *testing.T) {
	srv := newTestServer(t)

	// a control character that %q would render as an invalid JSON escape
	employeeID := "emp\x01\"7"
	token, _, err := srv.jwtService.GenerateSSEToken(employeeID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?token="+url.QueryEscape(token), nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	lines := strings.Split(rec.Body.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "event: connected", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "data: "))

	var greeting map[string]string
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &greeting))
	assert.Equal(t, "connected", greeting["status"])
	assert.Equal(t, employeeID, greeting["employee_id"])
}
