package server

import "github.com/jrsteele09/go-google-login/internal/config"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Browser login flow
	RouteAuthGoogle = "/auth/google"
	RouteCallback   = config.CallbackPath
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPIPrefix       = "/api/"
	RouteAPIProfile      = "/api/profile"
	RouteAPIMe           = "/api/me"
	RouteAPIExchangeCode = "/api/exchange-code"

	RouteHealthz = "/healthz"
)
