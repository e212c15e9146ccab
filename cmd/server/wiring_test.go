package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-google-login/internal/config"
	"github.com/jrsteele09/go-google-login/provider"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/jrsteele09/go-google-login/sessions/redisrepo"
	"github.com/jrsteele09/go-google-login/users"
	"github.com/jrsteele09/go-google-login/users/sqliterepo"
	"github.com/stretchr/testify/require"
)

func TestOpenUserRepo(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := openUserRepo(ctx, config.Storage{UserStore: "memory"})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &users.InMemoryRepo{}, repo)

	repo, closeFn, err = openUserRepo(ctx, config.Storage{
		UserStore:  "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "users.db"),
	})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &sqliterepo.Store{}, repo)
}

func TestOpenSessionRepo(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeFn, err := openSessionRepo(ctx, config.Storage{SessionStore: "memory"})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &sessions.InMemoryRepo{}, repo)

	mr := miniredis.RunT(t)
	repo, closeFn, err = openSessionRepo(ctx, config.Storage{
		SessionStore: "redis",
		RedisURL:     "redis://" + mr.Addr(),
	})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &redisrepo.Repo{}, repo)
}

func TestOpenSessionRepoRedisDown(t *testing.T) {
	_, _, err := openSessionRepo(context.Background(), config.Storage{
		SessionStore: "redis",
		RedisURL:     "redis://127.0.0.1:1",
	})
	require.Error(t, err)
}

func TestNewProviderDefaultsToGoogle(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("OIDC_ISSUER", "")
	c, err := config.New()
	require.NoError(t, err)

	p, err := newProvider(context.Background(), c)
	require.NoError(t, err)
	require.IsType(t, &provider.GoogleProvider{}, p)
}
