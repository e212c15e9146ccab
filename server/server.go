package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/go-google-login/auth"
	"github.com/jrsteele09/go-google-login/internal/config"
	"github.com/jrsteele09/go-google-login/sessions"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	login    *auth.LoginService
	sessions *sessions.Manager
}

func New(config config.Config, login *auth.LoginService, sessionManager *sessions.Manager) (*Server, error) {
	if config == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if login == nil {
		return nil, errors.New("[Server New] login service is required")
	}
	if sessionManager == nil {
		return nil, errors.New("[Server New] session manager is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		login:    login,
		sessions: sessionManager,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
