package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery", hash, "hash must not be the plaintext")

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword("", "anything"))
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	exp := time.Now().Add(time.Hour)

	raw, err := NewSessionToken(secret, "abc123", 42, exp)
	require.NoError(t, err)

	claims, err := ParseSessionToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.SessionID)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	secret := []byte("test-secret")
	raw, err := NewSessionToken(secret, "abc123", 42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		key  []byte
	}{
		{"wrong secret", raw, []byte("other-secret")},
		{"garbage", "not.a.token", secret},
		{"flipped payload", flipMiddleSegment(raw), secret},
		{"empty", "", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.key, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	raw, err := NewSessionToken(secret, "abc123", 42, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseSessionToken(secret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// flipMiddleSegment corrupts one character of the JWT payload segment.
func flipMiddleSegment(raw string) string {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || len(parts[1]) == 0 {
		return raw
	}
	mid := []byte(parts[1])
	if mid[0] == 'A' {
		mid[0] = 'B'
	} else {
		mid[0] = 'A'
	}
	parts[1] = string(mid)
	return strings.Join(parts, ".")
}
