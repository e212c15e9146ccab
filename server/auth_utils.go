package server

import (
	"net/http"
	"net/url"
	"strings"
)

// cookieSecure reports whether the session cookie gets the Secure flag: the
// configured public URL is https, or the request arrived over https.
func (s *Server) cookieSecure(r *http.Request) bool {
	return s.config.GetCookieSecure() || getScheme(r) == "https"
}

// cookieSameSite is None only when the frontend is on another origin and the
// cookie is Secure; browsers reject SameSite=None without Secure.
func (s *Server) cookieSameSite(secure bool) http.SameSite {
	if s.config.GetCrossSite() && secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, r *http.Request, value string) {
	isSecure := s.cookieSecure(r)

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: s.cookieSameSite(isSecure),
		MaxAge:   int(s.sessions.TTL().Seconds()),
	})
}

// ClearLoginSessionCookie expires the cookie with the attributes it was set
// with so the browser matches and drops it.
func (s *Server) ClearLoginSessionCookie(w http.ResponseWriter, r *http.Request) {
	isSecure := s.cookieSecure(r)

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: s.cookieSameSite(isSecure),
		MaxAge:   -1,
	})
}

func (s *Server) loginSessionCookieValue(r *http.Request) string {
	cookie, err := r.Cookie(s.config.GetSessionCookieName())
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) successURL() string {
	return s.config.GetFrontendURL() + s.config.GetSuccessPath()
}

func (s *Server) loginURL() string {
	return s.config.GetFrontendURL() + s.config.GetLoginPath()
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// redirectWithError appends a public error code to path.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorCode string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	http.Redirect(w, r, path+sep+"error="+url.QueryEscape(errorCode), http.StatusFound)
}
