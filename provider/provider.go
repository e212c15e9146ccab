// Package provider talks to the identity provider: it builds the consent URL,
// exchanges authorization codes and fetches the user's profile.
package provider

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Profile is the subset of the provider's user-info response we keep.
type Profile struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// Provider abstracts the three calls of the authorization-code flow.
type Provider interface {
	// AuthURL is where the browser is sent to sign in and consent.
	AuthURL() string

	// Exchange trades an authorization code for tokens. Failures match
	// errors.ErrTokenExchangeFailed.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// UserInfo fetches the profile for an access token. Failures, including a
	// missing subject, match errors.ErrProfileFetchFailed.
	UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Config is what both provider implementations need.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	Prompt       string        // e.g. "select_account"; empty omits the parameter
	Timeout      time.Duration // per outbound call
	AuthURL      string        // overrides, empty means provider default
	TokenURL     string
	UserInfoURL  string
	HTTPClient   *http.Client // optional base client
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.timeout()}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}
