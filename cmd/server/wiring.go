package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-google-login/internal/config"
	"github.com/jrsteele09/go-google-login/provider"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/jrsteele09/go-google-login/sessions/redisrepo"
	"github.com/jrsteele09/go-google-login/users"
	"github.com/jrsteele09/go-google-login/users/firestorerepo"
	"github.com/jrsteele09/go-google-login/users/sqliterepo"
	"github.com/rs/zerolog/log"
)

const sessionJanitorInterval = 5 * time.Minute

func noopClose() {}

func openUserRepo(ctx context.Context, c config.StorageConfig) (users.Repo, func(), error) {
	switch c.GetUserStore() {
	case config.StoreSQLite:
		store, err := sqliterepo.Open(c.GetSQLitePath())
		if err != nil {
			return nil, noopClose, fmt.Errorf("open sqlite user store: %w", err)
		}
		log.Info().Str("path", c.GetSQLitePath()).Msg("Using SQLite user store")
		return store, func() { _ = store.Close() }, nil
	case config.StoreFirestore:
		store, err := firestorerepo.New(ctx, c.GetFirestoreProjectID(), c.GetFirestoreDatabase(), c.GetFirestoreCollection())
		if err != nil {
			return nil, noopClose, fmt.Errorf("open firestore user store: %w", err)
		}
		log.Info().Str("project", c.GetFirestoreProjectID()).Str("collection", c.GetFirestoreCollection()).Msg("Using Firestore user store")
		return store, func() { _ = store.Close() }, nil
	default:
		log.Warn().Msg("Using in-memory user store; records are lost on restart")
		return users.NewInMemoryRepo(), noopClose, nil
	}
}

// openSessionRepo returns the session store. The in-memory store gets a
// janitor goroutine that stops with ctx.
func openSessionRepo(ctx context.Context, c config.StorageConfig) (sessions.Repo, func(), error) {
	switch c.GetSessionStore() {
	case config.StoreRedis:
		repo, err := redisrepo.Dial(ctx, c.GetRedisURL(), c.GetRedisKeyPrefix())
		if err != nil {
			return nil, noopClose, fmt.Errorf("open redis session store: %w", err)
		}
		log.Info().Msg("Using Redis session store")
		return repo, func() { _ = repo.Close() }, nil
	default:
		repo := sessions.NewInMemoryRepo()
		go repo.RunJanitor(ctx, sessionJanitorInterval)
		return repo, noopClose, nil
	}
}

// newProvider uses OIDC discovery when an issuer is configured and the
// fixed Google endpoints otherwise.
func newProvider(ctx context.Context, c config.OAuthConfig) (provider.Provider, error) {
	endpoints := c.GetProviderEndpoints()
	cfg := provider.Config{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURI:  c.GetRedirectURI(),
		Scopes:       c.GetScopes(),
		Prompt:       c.GetPrompt(),
		Timeout:      c.GetProviderTimeout(),
		AuthURL:      endpoints.AuthURL,
		TokenURL:     endpoints.TokenURL,
		UserInfoURL:  endpoints.UserInfoURL,
	}

	if issuer := c.GetOIDCIssuer(); issuer != "" {
		p, err := provider.NewOIDCProvider(ctx, issuer, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("issuer", issuer).Msg("Using OIDC provider")
		return p, nil
	}
	return provider.NewGoogleProvider(cfg), nil
}
