package auth

import "context"

type AuthService interface {
	// Login exchanges an employee code and password for an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the access token until the process restarts
	Logout(ctx context.Context, accessToken string) error

	IssueSSEToken(ctx context.Context, employeeID string) (SSETokenResponse, error)
}
