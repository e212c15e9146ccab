package config

import "time"

const (
	clientIDVar     = "GOOGLE_CLIENT_ID"
	clientSecretVar = "GOOGLE_CLIENT_SECRET"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
	GetPrompt() string
	GetProviderTimeout() time.Duration
	GetOIDCIssuer() string
	GetProviderEndpoints() ProviderEndpoints
}

// ProviderEndpoints overrides the Google endpoints, mainly for local mocks.
// Empty fields mean "use the provider default".
type ProviderEndpoints struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

type OAuth struct {
	ClientID        string        `env:"GOOGLE_CLIENT_ID"`
	ClientSecret    string        `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI     string        `env:"REDIRECT_URI"`
	Scopes          []string      `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,profile,email"`
	Prompt          string        `env:"GOOGLE_PROMPT" envDefault:"select_account"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	OIDCIssuer      string        `env:"OIDC_ISSUER"`
	AuthURL         string        `env:"GOOGLE_AUTH_URL"`
	TokenURL        string        `env:"GOOGLE_TOKEN_URL"`
	UserInfoURL     string        `env:"GOOGLE_USERINFO_URL"`
}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetScopes() []string {
	if len(o.Scopes) == 0 {
		return []string{"openid", "profile", "email"}
	}
	return o.Scopes
}

func (o OAuth) GetPrompt() string {
	return o.Prompt
}

func (o OAuth) GetProviderTimeout() time.Duration {
	if o.ProviderTimeout <= 0 {
		return 10 * time.Second
	}
	return o.ProviderTimeout
}

func (o OAuth) GetOIDCIssuer() string {
	return o.OIDCIssuer
}

func (o OAuth) GetProviderEndpoints() ProviderEndpoints {
	return ProviderEndpoints{
		AuthURL:     o.AuthURL,
		TokenURL:    o.TokenURL,
		UserInfoURL: o.UserInfoURL,
	}
}
