package auth

import (
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Code     string `json:"code" validate:"required,max=32"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type TokenResponse struct {
	AccessToken string                    `json:"access_token"`
	TokenType   string                    `json:"token_type"`
	ExpiresAt   int64                     `json:"expires_at"`
	Employee    employee.EmployeeResponse `json:"employee"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
