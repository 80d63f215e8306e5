package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/madar-hris/hrms-backend-go/internal/domain/auth"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employee.EmployeeService
	jwt.Service
}

func NewAuthService(employeeService employee.EmployeeService, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeService: employeeService,
		Service:         jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	req.Code = strings.TrimSpace(req.Code)
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeService.Authenticate(ctx, req.Code, req.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(jwt.Subject{
		EmployeeID: emp.ID,
		Code:       emp.Code,
		Name:       emp.Name,
		Role:       string(emp.Role),
		IsAdmin:    emp.Role.IsAdmin(),
		BranchID:   emp.BranchID,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Employee logged in", "employee_id", emp.ID, "code", emp.Code)
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Employee:    employee.ToResponse(emp),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(accessToken) {
		return auth.ErrTokenRevoked
	}
	a.Service.RevokeToken(accessToken)
	return nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context, employeeID string) (auth.SSETokenResponse, error) {
	if employeeID == "" {
		return auth.SSETokenResponse{}, auth.ErrInvalidToken
	}
	token, expiresIn, err := a.Service.GenerateSSEToken(employeeID)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
