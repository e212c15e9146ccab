package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/stretchr/testify/require"
)

type failingDeleteRepo struct {
	*InMemoryRepo
}

func (failingDeleteRepo) Delete(context.Context, string) error {
	return errors.New("store offline")
}

func newTestManager(t *testing.T, repo Repo) *Manager {
	t.Helper()
	signer, err := NewCookieSigner("manager-secret")
	require.NoError(t, err)
	return NewManager(repo, signer, 24*time.Hour)
}

func TestManager_CreateLoadDestroy(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepo()
	m := newTestManager(t, repo)

	created, value, err := m.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 24*time.Hour, created.ExpiresAt.Sub(created.CreatedAt))

	loaded, err := m.Load(ctx, value)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)
	require.Equal(t, "user-1", loaded.UserID)

	require.NoError(t, m.Destroy(ctx, value))
	_, err = m.Load(ctx, value)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m := newTestManager(t, NewInMemoryRepo())
	_, err := m.Load(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestManager_DestroyFailureIsReported(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, failingDeleteRepo{NewInMemoryRepo()})

	_, value, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	err = m.Destroy(ctx, value)
	require.ErrorIs(t, err, apperrors.ErrSessionDestroyFailed)
}

func TestManager_DestroyIgnoresUnverifiableCookie(t *testing.T) {
	m := newTestManager(t, failingDeleteRepo{NewInMemoryRepo()})
	require.NoError(t, m.Destroy(context.Background(), "garbage"))
	require.NoError(t, m.Destroy(context.Background(), ""))
}
