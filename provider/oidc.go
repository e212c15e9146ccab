package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"golang.org/x/oauth2"
)

var _ Provider = (*OIDCProvider)(nil)

// OIDCProvider discovers its endpoints from an issuer and verifies the ID
// token returned alongside the access token.
type OIDCProvider struct {
	client   oauthClient
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewOIDCProvider runs discovery against issuer. Discovery happens once, at
// startup, so a bad issuer fails fast.
func NewOIDCProvider(ctx context.Context, issuer string, cfg Config) (*OIDCProvider, error) {
	c := newOAuthClient(cfg, oauth2.Endpoint{})
	discoveryCtx, cancel := context.WithTimeout(oidc.ClientContext(ctx, c.http), cfg.timeout())
	defer cancel()

	p, err := oidc.NewProvider(discoveryCtx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	endpoint := p.Endpoint()
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &OIDCProvider{
		client:   newOAuthClient(cfg, endpoint),
		provider: p,
		verifier: p.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Type returns the provider type.
func (p *OIDCProvider) Type() string {
	return "oidc"
}

func (p *OIDCProvider) AuthURL() string {
	return p.client.authURL()
}

// Exchange trades the code and, when the response carries an ID token,
// verifies its signature, issuer and audience.
func (p *OIDCProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.client.exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return token, nil
	}

	verifyCtx, cancel := context.WithTimeout(oidc.ClientContext(ctx, p.client.http), p.client.cfg.timeout())
	defer cancel()
	if _, err := p.verifier.Verify(verifyCtx, rawIDToken); err != nil {
		return nil, apperrors.Join(apperrors.ErrTokenExchangeFailed, fmt.Errorf("ID token verification failed: %w", err))
	}
	return token, nil
}

// UserInfo calls the discovered user-info endpoint.
func (p *OIDCProvider) UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	ctx, cancel := context.WithTimeout(oidc.ClientContext(ctx, p.client.http), p.client.cfg.timeout())
	defer cancel()

	info, err := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, err)
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := info.Claims(&claims); err != nil {
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, fmt.Errorf("failed to parse claims: %w", err))
	}

	if strings.TrimSpace(info.Subject) == "" {
		return nil, apperrors.Wrapf(apperrors.ErrProfileFetchFailed, "user info has no subject")
	}

	return &Profile{
		Subject:       info.Subject,
		Name:          claims.Name,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Picture:       claims.Picture,
	}, nil
}
