package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanarora07/studybuddy-new/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "studybuddy-test",
		AccessDuration:  time.Hour,
		RefreshDuration: 168 * time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(config.JWTConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := newTestManager(t)

	access, refresh, exp, err := m.GenerateTokenPair("user-1", "amelia@example.com", "Amelia")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "amelia@example.com", claims.Email)
	assert.Equal(t, "Amelia", claims.Name)
	assert.Equal(t, "access", claims.Type)

	refreshClaims, err := m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Type)
	assert.Empty(t, refreshClaims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(config.JWTConfig{
		Secret:         "different-secret",
		AccessDuration: time.Hour,
	})
	require.NoError(t, err)

	access, _, _, err := other.GenerateTokenPair("user-1", "a@example.com", "A")
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m, err := NewManager(config.JWTConfig{
		Secret:          "test-secret",
		AccessDuration:  -time.Minute,
		RefreshDuration: time.Hour,
	})
	require.NoError(t, err)

	access, _, _, err := m.GenerateTokenPair("user-1", "a@example.com", "A")
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

