package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAuthGoogle, ChainMiddleware(s.LoginStartHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// API routes (session cookie auth)
	s.RegisterRouteHandler("GET "+RouteAPIProfile, ChainMiddleware(s.RequireSession(s.ProfileHandler()), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.RequireSession(s.ProfileHandler()), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIExchangeCode, ChainMiddleware(s.ExchangeCodeHandler(), s.APIMiddleware()...))

	// CorsMiddleware answers every preflight itself
	s.RegisterRouteHandler("OPTIONS "+RouteAPIPrefix, ChainMiddleware(func(http.ResponseWriter, *http.Request) {}, s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthHandler())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[ %s] %s", colourMethod(method), path)
}
