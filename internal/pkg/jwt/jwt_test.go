package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trainhub/trainhub-backend-go/internal/domain/user"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h", "168h")

	traineeID := "019541e0-7a3b-7c4d-8e5f-0123456789ab"
	programID := "golang-2025"
	tokenString, expiresAt, err := svc.GenerateAccessToken("u-1", "trainee@example.com", &traineeID, &programID, user.RoleTrainee)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, traineeID, claims["trainee_id"])
	assert.Equal(t, "trainee", claims["role"])
}

func TestGenerateAccessToken_NilTraineeID(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, _, err := svc.GenerateAccessToken("u-2", "mentor@example.com", nil, nil, user.RoleMentor)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["trainee_id"])
	assert.Equal(t, "mentor", claims["role"])
}

func TestRevokeToken(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))

	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
	assert.False(t, svc.IsTokenRevoked("some-other-token"))
}

func TestRefreshTokenCookie(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, expiresAt, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	cookie := svc.RefreshTokenCookie(tokenString, expiresAt)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, tokenString, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
}
