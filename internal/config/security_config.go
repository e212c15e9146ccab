package config

import "time"

const sessionSecretVar = "SESSION_SECRET"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetSessionCookieName() string
	GetCookieSecure() bool
	GetCrossSite() bool
}

type Security struct {
	SessionSecret     string        `env:"SESSION_SECRET"`
	MaxSessionAge     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
}

func (s Security) GetSessionSecret() string {
	return s.SessionSecret
}

func (s Security) GetMaxSessionAge() time.Duration {
	if s.MaxSessionAge <= 0 {
		return 24 * time.Hour
	}
	return s.MaxSessionAge
}

func (s Security) GetSessionCookieName() string {
	if s.SessionCookieName == "" {
		return "sid"
	}
	return s.SessionCookieName
}
