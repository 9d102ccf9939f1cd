package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", "test-issuer", 1)

	token, expiresAt, err := m.GenerateToken("alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "alice", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", "test", 1).GenerateToken("alice", nil)
	require.NoError(t, err)

	_, err = NewManager("secret-b", "test", 1).ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	m := NewManager("test-secret", "test", 1)

	_, err := m.ParseToken("not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	// 有效期为 0 小时的令牌立即过期
	m := NewManager("test-secret", "test", 0)
	token, _, err := m.GenerateToken("alice", nil)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
