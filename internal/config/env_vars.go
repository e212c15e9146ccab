package config

import (
	"strings"
)

const (
	baseURLVar     = "BASE_URL"
	frontendURLVar = "FRONTEND_URL"

	// CallbackPath is the provider redirect target registered with Google.
	CallbackPath = "/auth/google/callback"
)

type EnvVars struct {
	Port         string `env:"PORT" envDefault:"3000"`
	AppName      string `env:"APP_NAME" envDefault:"Google Login"`
	Environment  string `env:"ENV" envDefault:"DEV"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost:3000"`
	FrontendURL  string `env:"FRONTEND_URL"`
	SuccessPath  string `env:"SUCCESS_PATH" envDefault:"/dashboard"`
	LoginPath    string `env:"LOGIN_PATH" envDefault:"/login"`
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "3000"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Environment == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Environment)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetBaseURL returns the public URL of this backend (e.g., "https://api.example.com")
func (e EnvVars) GetBaseURL() string {
	return strings.TrimRight(e.BaseURL, "/")
}

// GetFrontendURL returns the browser app URL, defaulting to the backend itself
func (e EnvVars) GetFrontendURL() string {
	if e.FrontendURL == "" {
		return e.GetBaseURL()
	}
	return strings.TrimRight(e.FrontendURL, "/")
}

func (e EnvVars) GetSuccessPath() string {
	return e.SuccessPath
}

func (e EnvVars) GetLoginPath() string {
	return e.LoginPath
}

func (e EnvVars) GetOTelEndpoint() string {
	return e.OTelEndpoint
}
