package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/rs/zerolog"
)

// SessionHandlerFunc is a handler that runs only with a live session.
type SessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session sessions.Session)

// RequireSession verifies the session cookie and loads the session. Any
// failure is a 401 JSON response, never a redirect.
func (s *Server) RequireSession(next SessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessions.Load(r.Context(), s.loginSessionCookieValue(r))
		if err != nil {
			code := apperrors.PublicCode(err)
			if code != apperrors.CodeUnauthorized {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("session store failure")
				writeError(w, http.StatusInternalServerError, apperrors.CodeInternal, "internal server error")
				return
			}
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("session rejected")
			writeError(w, http.StatusUnauthorized, apperrors.CodeUnauthorized, "login required")
			return
		}
		next(w, r, session)
	}
}
