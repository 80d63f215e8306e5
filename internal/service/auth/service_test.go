package auth

import (
	"context"
	"testing"

	"github.com/madar-hris/hrms-backend-go/internal/domain/auth"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
	employeeService "github.com/madar-hris/hrms-backend-go/internal/service/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

func setupAuth(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	ctx := context.Background()

	store, err := state.Open(ctx, storage.NewMemoryStorage(), nil)
	require.NoError(t, err)
	employees := employeeService.NewEmployeeService(state.NewEmployeeRepository(store))

	_, err = employees.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Code:         "MGR-01",
		Name:         "Haider Salim",
		Password:     "password123",
		Role:         string(employee.RoleBranchManager),
		BranchID:     "baghdad",
		Salary:       decimal.NewFromInt(2000000),
		CheckInTime:  "08:00",
		CheckOutTime: "16:00",
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(employees, jwtService), jwtService
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := setupAuth(t)

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{"valid credentials", auth.LoginRequest{Code: "MGR-01", Password: "password123"}, nil},
		{"code is case-insensitive", auth.LoginRequest{Code: " mgr-01 ", Password: "password123"}, nil},
		{"wrong password", auth.LoginRequest{Code: "MGR-01", Password: "nope"}, employee.ErrInvalidCredentials},
		{"unknown code", auth.LoginRequest{Code: "MGR-99", Password: "password123"}, employee.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, "MGR-01", resp.Employee.Code)

			token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
			require.NoError(t, err)
			isAdmin, _ := token.Get("is_admin")
			assert.Equal(t, true, isAdmin)
			branch, _ := token.Get("branch_id")
			assert.Equal(t, "baghdad", branch)
		})
	}

	t.Run("missing password fails validation", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Code: "MGR-01"})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := setupAuth(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Code: "MGR-01", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, svc.Logout(ctx, resp.AccessToken), auth.ErrTokenRevoked)
	assert.ErrorIs(t, svc.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestAuthService_IssueSSEToken(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := setupAuth(t)

	resp, err := svc.IssueSSEToken(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	employeeID, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)

	_, err = svc.IssueSSEToken(ctx, "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
