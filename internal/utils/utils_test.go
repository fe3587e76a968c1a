package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "session-1", RoleGuest, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "session-1", claims["sub"])
	assert.Equal(t, RoleGuest, claims["role"])
}

func TestNewAccessToken_EmptySecret(t *testing.T) {
	_, err := NewAccessToken("", "admin", RoleAdmin, time.Hour)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("letmein", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(h, "letmein"))
	assert.False(t, VerifyPassword(h, "wrong"))
	assert.False(t, VerifyPassword("", "letmein"))
}
