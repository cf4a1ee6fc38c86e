package jwt

import (
	"testing"
	"time"

	"therapy-booking/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		VerifyExpiry:  24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "user@example.com", "PATIENT")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "PATIENT", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com", "THERAPIST")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestVerificationTokenCarriesNoRole(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateVerificationToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, VerifyToken, claims.TokenType)
	assert.Empty(t, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:       "different-secret",
		AccessExpiry: 15 * time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", "PATIENT")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", "PATIENT")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
