package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/rs/zerolog"
)

// LoginStartHandler sends the browser to the provider's consent page.
func (s *Server) LoginStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.login.AuthURL(), http.StatusFound)
	}
}

// CallbackHandler completes the login: exchange, profile, upsert, session,
// cookie. Every failure lands on the login page with a public error code.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())
		query := r.URL.Query()

		if providerErr := query.Get("error"); providerErr != "" {
			logger.Warn().Str("provider_error", providerErr).Msg("provider returned an error to the callback")
			redirectWithError(w, r, s.loginURL(), apperrors.CodeMissingCode)
			return
		}

		user, err := s.login.CompleteLogin(r.Context(), query.Get("code"))
		if err != nil {
			logger.Error().Err(err).Msg("login failed")
			redirectWithError(w, r, s.loginURL(), apperrors.PublicCode(err))
			return
		}

		_, cookieValue, err := s.sessions.Create(r.Context(), user.ID)
		if err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create session")
			redirectWithError(w, r, s.loginURL(), apperrors.CodeInternal)
			return
		}

		s.SetLoginSessionCookie(w, r, cookieValue)
		logger.Info().Str("user_id", user.ID).Msg("user logged in")
		redirectSuccess(w, r, s.successURL())
	}
}

// LogoutHandler destroys the session and clears the cookie. The cookie is
// cleared even when the store fails.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.sessions.Destroy(r.Context(), s.loginSessionCookieValue(r))
		s.ClearLoginSessionCookie(w, r)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to destroy session")
			writeError(w, http.StatusInternalServerError, apperrors.CodeSessionDestroyFail, "logout failed")
			return
		}
		http.Redirect(w, r, s.loginURL(), http.StatusFound)
	}
}
