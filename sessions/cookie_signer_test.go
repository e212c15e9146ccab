package sessions

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer, err := NewCookieSigner("top-secret")
	require.NoError(t, err)

	value, err := signer.Sign(Session{ID: "session-1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.NotContains(t, value, "top-secret")

	id, err := signer.Verify(value)
	require.NoError(t, err)
	require.Equal(t, "session-1", id)
}

func TestCookieSigner_RejectsOtherSecret(t *testing.T) {
	a, err := NewCookieSigner("secret-a")
	require.NoError(t, err)
	b, err := NewCookieSigner("secret-b")
	require.NoError(t, err)

	value, err := a.Sign(Session{ID: "s", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = b.Verify(value)
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionCookie)
}

func TestCookieSigner_RejectsTampering(t *testing.T) {
	signer, err := NewCookieSigner("secret")
	require.NoError(t, err)
	value, err := signer.Sign(Session{ID: "s", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	parts := strings.Split(value, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = signer.Verify(tampered)
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionCookie)

	_, err = signer.Verify("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionCookie)
}

func TestCookieSigner_Expired(t *testing.T) {
	signer, err := NewCookieSigner("secret")
	require.NoError(t, err)
	now := time.Now()
	signer.now = func() time.Time { return now }

	value, err := signer.Sign(Session{ID: "s", ExpiresAt: now.Add(time.Minute)})
	require.NoError(t, err)

	signer.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = signer.Verify(value)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestNewCookieSigner_RequiresSecret(t *testing.T) {
	_, err := NewCookieSigner("")
	require.ErrorIs(t, err, apperrors.ErrConfigurationMissing)
}
