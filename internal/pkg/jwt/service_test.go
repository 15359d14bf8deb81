package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestService(now)

	tok, exp, err := s.GenerateAccessToken("user-42", "admin")
	require.NoError(t, err)
	assert.Equal(t, now.UTC().Add(15*time.Minute), exp)

	c, err := s.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", c.Subject)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
}

func TestHMACService_RefreshTokenIsNotAccess(t *testing.T) {
	s := newTestService(time.Now())

	tok, _, err := s.GenerateRefreshToken("user-42", "analyst")
	require.NoError(t, err)

	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, c.TokenType)
	assert.Equal(t, "analyst", c.Role)
}

func TestHMACService_Expired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	tok, _, err := newTestService(issued).GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Invalid(t *testing.T) {
	s := newTestService(time.Now())

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}

	other := NewHMACService("other", "other-refresh", time.Minute, time.Minute)
	tok, _, err := other.GenerateAccessToken("user-1", "")
	require.NoError(t, err)
	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = s.GenerateAccessToken("  ", "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
