package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 16

type exchangeCodeRequest struct {
	Code string `json:"code"`
}

type exchangeCodeResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileHandler returns the stored record of the session's user.
func (s *Server) ProfileHandler() SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, session sessions.Session) {
		user, err := s.login.Profile(r.Context(), session.UserID)
		switch {
		case err == nil:
			_ = writeJSON(w, http.StatusOK, user)
		case apperrors.Is(err, apperrors.ErrUserRecordNotFound):
			writeError(w, http.StatusNotFound, apperrors.CodeUserRecordNotFound, "user not found")
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Str("user_id", session.UserID).Msg("profile read failed")
			writeError(w, http.StatusInternalServerError, apperrors.CodeInternal, "internal server error")
		}
	}
}

// ExchangeCodeHandler is the stateless exchange for clients that receive the
// code themselves. It answers with the name and email and sets no cookie.
func (s *Server) ExchangeCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exchangeCodeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil || req.Code == "" {
			writeError(w, http.StatusBadRequest, apperrors.CodeMissingCode, "authorization code is required")
			return
		}

		user, err := s.login.ExchangeCode(r.Context(), req.Code)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("code exchange failed")
			switch {
			case apperrors.Is(err, apperrors.ErrMissingCode):
				writeError(w, http.StatusBadRequest, apperrors.CodeMissingCode, "authorization code is required")
			case apperrors.Is(err, apperrors.ErrTokenExchangeFailed):
				writeError(w, http.StatusBadRequest, apperrors.CodeTokenExchangeFailed, "failed to exchange authorization code")
			case apperrors.Is(err, apperrors.ErrProfileFetchFailed):
				writeError(w, http.StatusInternalServerError, apperrors.CodeProfileFetchFailed, "failed to fetch user profile")
			default:
				writeError(w, http.StatusInternalServerError, apperrors.CodeInternal, "internal server error")
			}
			return
		}

		_ = writeJSON(w, http.StatusOK, exchangeCodeResponse{Name: user.DisplayName, Email: user.Email})
	}
}

// HealthHandler is a liveness probe.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
