package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(Subject{EmployeeID: "e1", Code: "EMP-001", Role: "super-admin", IsAdmin: true})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "e1", claims["employee_id"])
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, true, claims["is_admin"])

	_, _, err = NewJWTService("s", "soon").GenerateAccessToken(Subject{EmployeeID: "e1"})
	assert.Error(t, err)
}

func TestJWTService_SSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresIn, err := svc.GenerateSSEToken("e1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "e1", id)

	access, _, err := svc.GenerateAccessToken(Subject{EmployeeID: "e1"})
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestJWTService_Revoke(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}
