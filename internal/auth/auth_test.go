package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewStore(time.Hour, nil)

	require.NoError(t, store.Register("alice", "hunter2"))

	token, err := store.Authenticate("alice", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
}

func TestRegisterDuplicateUser(t *testing.T) {
	store := NewStore(time.Hour, nil)
	require.NoError(t, store.Register("alice", "hunter2"))
	assert.ErrorIs(t, store.Register("alice", "other"), ErrUserExists)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := NewStore(time.Hour, nil)
	require.NoError(t, store.Register("alice", "hunter2"))

	_, err := store.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUnknownToken(t *testing.T) {
	store := NewStore(time.Hour, nil)
	_, err := store.Verify("bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	store := NewStore(time.Millisecond, nil)
	require.NoError(t, store.Register("alice", "hunter2"))

	token, err := store.Authenticate("alice", "hunter2")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = store.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	store := NewStore(time.Hour, nil)
	require.NoError(t, store.Register("alice", "hunter2"))
	token, err := store.Authenticate("alice", "hunter2")
	require.NoError(t, err)

	store.Revoke(token)
	_, err = store.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSweepDropsExpiredTokens(t *testing.T) {
	store := NewStore(time.Millisecond, nil)
	require.NoError(t, store.Register("alice", "hunter2"))
	_, err := store.Authenticate("alice", "hunter2")
	require.NoError(t, err)
	_, err = store.Authenticate("alice", "hunter2")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 0, store.Sweep())
}
