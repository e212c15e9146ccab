package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	SecurityConfig
	StorageConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
	GetFrontendURL() string
	GetSuccessPath() string
	GetLoginPath() string
	GetOTelEndpoint() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	Security
	Storage
}

// New reads the configuration from the environment. It does not validate it.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}
	return c, nil
}

// Validate reports every required variable that is missing in one error.
func (c mainConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, clientIDVar)
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, clientSecretVar)
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		missing = append(missing, sessionSecretVar)
	}
	if len(missing) > 0 {
		return apperrors.Wrapf(apperrors.ErrConfigurationMissing, "required: %s", strings.Join(missing, ", "))
	}

	if _, err := url.ParseRequestURI(c.GetBaseURL()); err != nil {
		return fmt.Errorf("invalid %s: %w", baseURLVar, err)
	}
	if _, err := url.ParseRequestURI(c.GetFrontendURL()); err != nil {
		return fmt.Errorf("invalid %s: %w", frontendURLVar, err)
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	return nil
}

// GetAllowedOrigins is the frontend origin plus any extra CORS origins.
func (c mainConfig) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	if origin := originOf(c.GetFrontendURL()); origin != "" {
		origins[origin] = nullValue{}
	}
	for _, o := range c.ExtraOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

// GetRedirectURI returns REDIRECT_URI or derives it from BASE_URL.
func (c mainConfig) GetRedirectURI() string {
	if c.RedirectURI != "" {
		return c.RedirectURI
	}
	return strings.TrimRight(c.GetBaseURL(), "/") + CallbackPath
}

// GetCookieSecure is true when the backend is served over https.
func (c mainConfig) GetCookieSecure() bool {
	u, err := url.Parse(c.GetBaseURL())
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https")
}

// GetCrossSite is true when the frontend and backend are on different origins.
func (c mainConfig) GetCrossSite() bool {
	return originOf(c.GetFrontendURL()) != originOf(c.GetBaseURL())
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
