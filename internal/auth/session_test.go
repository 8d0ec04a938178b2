package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren02/billdesk/internal/auth"
)

func TestSessionManager_Roundtrip(t *testing.T) {
	mgr := auth.NewSessionManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := mgr.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok := mgr.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestSessionManager_Expired(t *testing.T) {
	mgr := auth.NewSessionManager("test-secret", -time.Minute)

	token, err := mgr.Issue(uuid.New())
	require.NoError(t, err)

	_, ok := mgr.Verify(token)
	assert.False(t, ok)
}

func TestSessionManager_WrongSecret(t *testing.T) {
	token, err := auth.NewSessionManager("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, ok := auth.NewSessionManager("secret-b", time.Hour).Verify(token)
	assert.False(t, ok)
}

func TestSessionManager_Garbage(t *testing.T) {
	mgr := auth.NewSessionManager("test-secret", time.Hour)

	_, ok := mgr.Verify("not.a.token")
	assert.False(t, ok)

	_, ok = mgr.Verify("")
	assert.False(t, ok)
}
