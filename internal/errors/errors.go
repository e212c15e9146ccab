package errors

import (
	"errors"
	"fmt"
)

// Login flow and session errors
var (
	// Callback errors
	ErrMissingCode         = errors.New("missing authorization code")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrProfileFetchFailed  = errors.New("profile fetch failed")

	// Session errors
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrInvalidSessionCookie = errors.New("invalid session cookie")
	ErrSessionDestroyFailed = errors.New("session destroy failed")

	// User store errors
	ErrUserRecordNotFound = errors.New("user record not found")
	ErrUserStoreFailed    = errors.New("user store failed")

	// Startup errors
	ErrConfigurationMissing = errors.New("configuration missing")
)

// Public error codes. These are the only error strings that reach a browser.
const (
	CodeMissingCode         = "missing_code"
	CodeTokenExchangeFailed = "token_exchange_failed"
	CodeProfileFetchFailed  = "profile_fetch_failed"
	CodeUnauthorized        = "unauthorized"
	CodeUserRecordNotFound  = "user_not_found"
	CodeSessionDestroyFail  = "logout_failed"
	CodeInternal            = "internal_error"
	CodeBadRequest          = "bad_request"
)

// PublicCode maps an error chain to the code that is safe to show a client.
func PublicCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCode):
		return CodeMissingCode
	case errors.Is(err, ErrTokenExchangeFailed):
		return CodeTokenExchangeFailed
	case errors.Is(err, ErrProfileFetchFailed):
		return CodeProfileFetchFailed
	case errors.Is(err, ErrUserRecordNotFound):
		return CodeUserRecordNotFound
	case errors.Is(err, ErrSessionDestroyFailed):
		return CodeSessionDestroyFail
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrInvalidSessionCookie):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Join wraps cause with a sentinel so both match errors.Is
func Join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers only import this package
func New(text string) error {
	return errors.New(text)
}
