package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	token, expiresAt, err := svc.GenerateAccessToken("u1", "jo@example.com", user.RoleManager, user.SessionTypeUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "jo@example.com", claims["email"])
	assert.Equal(t, string(user.RoleManager), claims["role"])
	assert.Equal(t, user.SessionTypeUser, claims["session_type"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	token, expiresAt, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Add(167*time.Hour).Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "u1", claims["user_id"])
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService("secret-a", "15m", "168h")
	verifier := NewJWTService("secret-b", "15m", "168h")

	token, _, err := issuer.GenerateAccessToken("u1", "jo@example.com", user.RoleAdmin, user.SessionTypeUser)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}

func TestInvalidExpirationConfig(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration", "also-bad")

	_, _, err := svc.GenerateAccessToken("u1", "jo@example.com", user.RoleClerk, user.SessionTypeUser)
	assert.Error(t, err)

	_, _, err = svc.GenerateRefreshToken("u1")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	expiresAt := time.Now().Add(time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("tok", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, time.Unix(expiresAt, 0), cookie.Expires)
}
