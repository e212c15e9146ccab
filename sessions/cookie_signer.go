package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	cookieIssuer  = "session-cookie"
	hkdfInfoLabel = "session cookie signing key v1"
)

// cookieClaims is the payload of the signed session cookie.
type cookieClaims struct {
	jwtlib.RegisteredClaims
}

// CookieSigner signs and verifies session cookie values. The value is an HS256
// JWT whose subject is the session ID.
type CookieSigner struct {
	key []byte
	now func() time.Time
}

// NewCookieSigner derives a dedicated HMAC key from secret.
func NewCookieSigner(secret string) (*CookieSigner, error) {
	if secret == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfigurationMissing, "session signing secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfoLabel)), key); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}
	return &CookieSigner{key: key, now: time.Now}, nil
}

// Sign returns the cookie value for a session.
func (c *CookieSigner) Sign(session Session) (string, error) {
	claims := cookieClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    cookieIssuer,
			Subject:   session.ID,
			IssuedAt:  jwtlib.NewNumericDate(c.now()),
			ExpiresAt: jwtlib.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the session ID.
func (c *CookieSigner) Verify(value string) (string, error) {
	var claims cookieClaims
	_, err := jwtlib.ParseWithClaims(value, &claims, func(token *jwtlib.Token) (any, error) {
		return c.key, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(cookieIssuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return "", apperrors.Join(apperrors.ErrSessionExpired, err)
		}
		return "", apperrors.Join(apperrors.ErrInvalidSessionCookie, err)
	}
	if claims.Subject == "" {
		return "", apperrors.ErrInvalidSessionCookie
	}
	return claims.Subject, nil
}
