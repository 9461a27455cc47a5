package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret-key", 24)

	token, err := manager.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestParseWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret-key", 24)
	other := NewTokenManager("another-secret", 24)

	token, err := manager.Generate(42)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret-key", 24)

	claims := jwt.MapClaims{
		"id":  uint64(42),
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret-key", 24)

	_, err := manager.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMissingID(t *testing.T) {
	manager := NewTokenManager("test-secret-key", 24)

	claims := jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
