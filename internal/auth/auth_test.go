package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textlens/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "textlens.db"))
	require.NoError(t, err)
	return New(db)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "Secret1", "Secret1"))

	ok, err := svc.Login(ctx, "alice", "Secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Login(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Login(ctx, "bob", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Register(ctx, "alice", "a", "b")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// nothing was stored, so the username is still free
	require.NoError(t, svc.Register(ctx, "alice", "Secret1", "Secret1"))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name                        string
		username, password, confirm string
	}{
		{name: "empty username", username: "", password: "a", confirm: "a"},
		{name: "empty password", username: "alice", password: "", confirm: ""},
		{name: "empty confirmation", username: "alice", password: "a", confirm: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.username, tt.password, tt.confirm)
			require.Error(t, err)
			assert.True(t, database.IsValidation(err))
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "Secret1", "Secret1"))

	err := svc.Register(ctx, "alice", "Other2", "Other2")
	assert.ErrorIs(t, err, database.ErrDuplicateUsername)
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	svc := newTestService(t)

	var events []Event
	svc.Events().Subscribe(func(e Event) {
		events = append(events, e)
	})

	require.NoError(t, svc.Register(context.Background(), "alice", "Secret1", "Secret1"))

	require.Len(t, events, 1)
	assert.Equal(t, EventRegistered, events[0].Type)
}

func TestStateChangeEvents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var events []Event
	svc.Events().Subscribe(func(e Event) {
		events = append(events, e)
	})

	require.NoError(t, svc.Register(ctx, "alice", "Secret1", "Secret1"))

	ok, err := svc.Login(ctx, "alice", "Secret1")
	require.NoError(t, err)
	require.True(t, ok)

	// a failed login must not emit an event
	ok, err = svc.Login(ctx, "alice", "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	svc.Logout("alice")

	require.Len(t, events, 3)
	assert.Equal(t, EventRegistered, events[0].Type)
	assert.Equal(t, EventLoggedIn, events[1].Type)
	assert.Equal(t, EventLoggedOut, events[2].Type)
	assert.Equal(t, "alice", events[2].Username)
}
