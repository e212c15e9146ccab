package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultUserInfoURL is Google's OpenID Connect user-info endpoint.
const DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var _ Provider = (*GoogleProvider)(nil)

// GoogleProvider implements Provider against Google's OAuth 2.0 endpoints.
type GoogleProvider struct {
	client      oauthClient
	userInfoURL string
}

// googleUserInfoResponse accepts both the OIDC ("sub") and the legacy v2
// ("id", "verified_email") response shapes.
type googleUserInfoResponse struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NewGoogleProvider creates a Google provider. Endpoint overrides in cfg win
// over Google's defaults.
func NewGoogleProvider(cfg Config) *GoogleProvider {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = DefaultUserInfoURL
	}
	return &GoogleProvider{
		client:      newOAuthClient(cfg, endpoint),
		userInfoURL: userInfoURL,
	}
}

// Type returns the provider type.
func (p *GoogleProvider) Type() string {
	return "google"
}

func (p *GoogleProvider) AuthURL() string {
	return p.client.authURL()
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.client.exchange(ctx, code)
}

// UserInfo fetches user information from Google's userinfo endpoint.
func (p *GoogleProvider) UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.client.cfg.timeout())
	defer cancel()

	client := p.client.config.Client(p.client.withHTTPClient(ctx), token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, fmt.Errorf("failed to get user info: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, fmt.Errorf("failed to get user info: status %d", resp.StatusCode))
	}

	var googleUser googleUserInfoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&googleUser); err != nil {
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, fmt.Errorf("failed to decode user info: %w", err))
	}

	subject := strings.TrimSpace(googleUser.Sub)
	if subject == "" {
		subject = strings.TrimSpace(googleUser.ID)
	}
	if subject == "" {
		return nil, apperrors.Wrapf(apperrors.ErrProfileFetchFailed, "user info has no subject")
	}

	return &Profile{
		Subject:       subject,
		Name:          googleUser.Name,
		Email:         googleUser.Email,
		EmailVerified: googleUser.EmailVerified || googleUser.VerifiedEmail,
		Picture:       googleUser.Picture,
	}, nil
}
