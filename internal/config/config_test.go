package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-google-login/internal/config"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("SESSION_SECRET", "signing-secret")
}

func TestDefaults(t *testing.T) {
	setRequired(t)

	c, err := config.New()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, ":3000", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:3000", c.GetBaseURL())
	require.Equal(t, "http://localhost:3000", c.GetFrontendURL())
	require.Equal(t, "http://localhost:3000/auth/google/callback", c.GetRedirectURI())
	require.Equal(t, []string{"openid", "profile", "email"}, c.GetScopes())
	require.Equal(t, "select_account", c.GetPrompt())
	require.Equal(t, 10*time.Second, c.GetProviderTimeout())
	require.Equal(t, 24*time.Hour, c.GetMaxSessionAge())
	require.Equal(t, "sid", c.GetSessionCookieName())
	require.False(t, c.GetCookieSecure())
	require.False(t, c.GetCrossSite())
	require.Equal(t, config.StoreMemory, c.GetUserStore())
	require.Equal(t, config.StoreMemory, c.GetSessionStore())
}

func TestValidateReportsAllMissing(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	c, err := config.New()
	require.NoError(t, err)

	err = c.Validate()
	require.ErrorIs(t, err, apperrors.ErrConfigurationMissing)
	require.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
	require.Contains(t, err.Error(), "GOOGLE_CLIENT_SECRET")
	require.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidateMissingSigningSecretOnly(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_SECRET", "")

	c, err := config.New()
	require.NoError(t, err)
	err = c.Validate()
	require.ErrorIs(t, err, apperrors.ErrConfigurationMissing)
	require.NotContains(t, err.Error(), "GOOGLE_CLIENT_ID")
}

func TestCrossSiteSecureDeployment(t *testing.T) {
	setRequired(t)
	t.Setenv("BASE_URL", "https://api.example.com/")
	t.Setenv("FRONTEND_URL", "https://app.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, ")

	c, err := config.New()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.True(t, c.GetCookieSecure())
	require.True(t, c.GetCrossSite())
	require.Equal(t, "https://api.example.com/auth/google/callback", c.GetRedirectURI())

	origins := c.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://app.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://admin.example.com"))
	require.False(t, origins.IsAllowedOrigin("https://evil.example.com"))
	require.Equal(t, "https://admin.example.com, https://app.example.com", origins.String())
}

func TestExplicitRedirectURI(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIRECT_URI", "https://login.example.com/cb")

	c, err := config.New()
	require.NoError(t, err)
	require.Equal(t, "https://login.example.com/cb", c.GetRedirectURI())
}

func TestUnknownStore(t *testing.T) {
	setRequired(t)
	t.Setenv("USER_STORE", "mongo")

	c, err := config.New()
	require.NoError(t, err)
	require.ErrorContains(t, c.Validate(), "USER_STORE")
}

func TestFirestoreNeedsProject(t *testing.T) {
	setRequired(t)
	t.Setenv("USER_STORE", "firestore")

	c, err := config.New()
	require.NoError(t, err)
	require.ErrorContains(t, c.Validate(), "FIRESTORE_PROJECT_ID")
}

func TestBadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("PROVIDER_TIMEOUT", "soon")

	_, err := config.New()
	require.Error(t, err)
}
