package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearfix-client/internal/common/logger"
)

func statePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoginPersistsAndRestores(t *testing.T) {
	path := statePath(t)

	s := New(path, logger.NewNoOpLogger())
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Login("token-abc", "9876543210", RoleCustomer))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsCustomer())
	assert.Equal(t, "token-abc", s.Token())
	assert.Equal(t, "9876543210", s.Phone())

	// Same path, fresh process: identity comes back before first render.
	restored := New(path, logger.NewNoOpLogger())
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, RoleCustomer, restored.Role())
	assert.Equal(t, "9876543210", restored.Phone())
}

func TestLogoutClearsEverything(t *testing.T) {
	path := statePath(t)
	s := New(path, logger.NewNoOpLogger())
	require.NoError(t, s.Login("token-abc", "9876543210", RoleProvider))

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "session file must be removed")

	// Subsequent startup with no stored token is unauthenticated.
	fresh := New(path, logger.NewNoOpLogger())
	assert.False(t, fresh.IsAuthenticated())
}

func TestLogoutWithoutLoginIsNoError(t *testing.T) {
	s := New(statePath(t), logger.NewNoOpLogger())
	assert.NoError(t, s.Logout())
}

func TestPartialRecordDoesNotRestore(t *testing.T) {
	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"t","phone":""}`), 0o600))

	s := New(path, logger.NewNoOpLogger())
	assert.False(t, s.IsAuthenticated())
}

func TestCorruptFileDoesNotRestore(t *testing.T) {
	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := New(path, logger.NewNoOpLogger())
	assert.False(t, s.IsAuthenticated())
}

func TestDisplayPhone(t *testing.T) {
	s := New(statePath(t), logger.NewNoOpLogger())
	assert.Empty(t, s.DisplayPhone())

	require.NoError(t, s.Login("t", "9876543210", RoleCustomer))
	assert.Equal(t, "+91 9876543210", s.DisplayPhone())
}

func TestRolePredicates(t *testing.T) {
	s := New(statePath(t), logger.NewNoOpLogger())
	require.NoError(t, s.Login("t", "9876543210", RoleAdmin))
	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsCustomer())
	assert.False(t, s.IsProvider())
}

func TestTokenExpiry(t *testing.T) {
	s := New(statePath(t), logger.NewNoOpLogger())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "9876543210",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.NoError(t, s.Login(signed, "9876543210", RoleCustomer))
	assert.Equal(t, exp.Unix(), s.TokenExpiry().Unix())

	// Opaque tokens have no readable expiry.
	require.NoError(t, s.Login("opaque-token", "9876543210", RoleCustomer))
	assert.True(t, s.TokenExpiry().IsZero())
}
