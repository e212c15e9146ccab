package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGoogle is a token + userinfo server.
type fakeGoogle struct {
	*httptest.Server
	tokenStatus   int
	tokenBody     map[string]any
	userStatus    int
	userBody      map[string]any
	userDelay     time.Duration
	tokenCalls    atomic.Int32
	userCalls     atomic.Int32
	lastTokenForm url.Values
	lastAuthz     string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{
		tokenStatus: http.StatusOK,
		tokenBody:   map[string]any{"access_token": "access-123", "token_type": "Bearer", "expires_in": 3600},
		userStatus:  http.StatusOK,
		userBody:    map[string]any{"sub": "1001", "name": "Test User", "email": "user@example.com", "email_verified": true, "picture": "https://example.com/p.jpg"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		f.lastTokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.tokenStatus)
		_ = json.NewEncoder(w).Encode(f.tokenBody)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		f.userCalls.Add(1)
		f.lastAuthz = r.Header.Get("Authorization")
		if f.userDelay > 0 {
			time.Sleep(f.userDelay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.userStatus)
		_ = json.NewEncoder(w).Encode(f.userBody)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGoogle) provider(timeout time.Duration) *GoogleProvider {
	return NewGoogleProvider(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Prompt:       "select_account",
		Timeout:      timeout,
		AuthURL:      f.URL + "/authorize",
		TokenURL:     f.URL + "/token",
		UserInfoURL:  f.URL + "/userinfo",
	})
}

func TestGoogleProvider_Type(t *testing.T) {
	assert.Equal(t, "google", NewGoogleProvider(Config{}).Type())
}

func TestGoogleProvider_AuthURL(t *testing.T) {
	provider := NewGoogleProvider(Config{
		ClientID:    "client-id",
		RedirectURI: "https://example.com/auth/google/callback",
		Scopes:      []string{"openid", "profile", "email"},
		Prompt:      "select_account",
	})

	authURL, err := url.Parse(provider.AuthURL())
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", authURL.Host)
	q := authURL.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://example.com/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.False(t, q.Has("state"))
}

func TestGoogleProvider_AuthURLWithoutPrompt(t *testing.T) {
	provider := NewGoogleProvider(Config{ClientID: "c"})
	authURL, err := url.Parse(provider.AuthURL())
	require.NoError(t, err)
	assert.False(t, authURL.Query().Has("prompt"))
}

func TestGoogleProvider_Exchange(t *testing.T) {
	fake := newFakeGoogle(t)
	token, err := fake.provider(time.Second).Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "access-123", token.AccessToken)

	assert.Equal(t, "auth-code", fake.lastTokenForm.Get("code"))
	assert.Equal(t, "client-id", fake.lastTokenForm.Get("client_id"))
	assert.Equal(t, "client-secret", fake.lastTokenForm.Get("client_secret"))
	assert.Equal(t, "https://app.example.com/auth/google/callback", fake.lastTokenForm.Get("redirect_uri"))
	assert.Equal(t, "authorization_code", fake.lastTokenForm.Get("grant_type"))
}

func TestGoogleProvider_ExchangeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
	}{
		{"invalid_grant_400", http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "Bad Request"}},
		{"error_field_with_200", http.StatusOK, map[string]any{"error": "invalid_grant"}},
		{"missing_access_token", http.StatusOK, map[string]any{"token_type": "Bearer"}},
		{"server_error", http.StatusInternalServerError, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGoogle(t)
			fake.tokenStatus = tt.status
			fake.tokenBody = tt.body

			_, err := fake.provider(time.Second).Exchange(context.Background(), "code")
			require.ErrorIs(t, err, apperrors.ErrTokenExchangeFailed)
			assert.NotContains(t, err.Error(), "client-secret")
		})
	}
}

func TestGoogleProvider_ExchangeEmptyCode(t *testing.T) {
	fake := newFakeGoogle(t)
	_, err := fake.provider(time.Second).Exchange(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrMissingCode)
	assert.Zero(t, fake.tokenCalls.Load())
}

func TestGoogleProvider_UserInfo(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        map[string]any
		wantErr     bool
		wantSubject string
		wantVerify  bool
	}{
		{
			name:        "oidc_shape",
			status:      http.StatusOK,
			body:        map[string]any{"sub": "1001", "name": "Test User", "email": "user@example.com", "email_verified": true, "picture": "https://example.com/p.jpg"},
			wantSubject: "1001",
			wantVerify:  true,
		},
		{
			name:        "v2_shape_uses_id",
			status:      http.StatusOK,
			body:        map[string]any{"id": "2002", "name": "V2 User", "email": "v2@example.com", "verified_email": true},
			wantSubject: "2002",
			wantVerify:  true,
		},
		{
			name:    "no_identifier",
			status:  http.StatusOK,
			body:    map[string]any{"name": "Ghost", "email": "ghost@example.com"},
			wantErr: true,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    map[string]any{"error": "invalid_token"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGoogle(t)
			fake.userStatus = tt.status
			fake.userBody = tt.body

			profile, err := fake.provider(time.Second).UserInfo(context.Background(), &oauth2.Token{AccessToken: "access-123", TokenType: "Bearer"})
			assert.Equal(t, "Bearer access-123", fake.lastAuthz)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrProfileFetchFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, profile.Subject)
			assert.Equal(t, tt.body["name"], profile.Name)
			assert.Equal(t, tt.body["email"], profile.Email)
			assert.Equal(t, tt.wantVerify, profile.EmailVerified)
		})
	}
}

func TestGoogleProvider_UserInfoTimeout(t *testing.T) {
	fake := newFakeGoogle(t)
	fake.userDelay = 200 * time.Millisecond

	_, err := fake.provider(20*time.Millisecond).UserInfo(context.Background(), &oauth2.Token{AccessToken: "a"})
	require.ErrorIs(t, err, apperrors.ErrProfileFetchFailed)
}

func TestGoogleProvider_UserInfoBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	p := NewGoogleProvider(Config{UserInfoURL: srv.URL})
	_, err := p.UserInfo(context.Background(), &oauth2.Token{AccessToken: "a"})
	require.ErrorIs(t, err, apperrors.ErrProfileFetchFailed)
}
