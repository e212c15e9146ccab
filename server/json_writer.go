package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
		return err
	}
	return nil
}

// writeError writes a JSON error response. code is a public error code and
// message a fixed human string; neither carries internal detail.
func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	response := ErrorResponse{
		Error:   code,
		Message: message,
	}
	if err := writeJSON(w, statusCode, response); err != nil {
		// Fallback to plain text error if JSON encoding fails
		http.Error(w, code+": "+message, statusCode)
	}
}
