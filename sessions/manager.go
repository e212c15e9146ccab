package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
)

// Manager ties the session store to the signed cookie value.
type Manager struct {
	repo   Repo
	signer *CookieSigner
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(repo Repo, signer *CookieSigner, ttl time.Duration) *Manager {
	return &Manager{
		repo:   repo,
		signer: signer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of new sessions and their cookies.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session for userID and returns it with its cookie value.
func (m *Manager) Create(ctx context.Context, userID string) (Session, string, error) {
	now := m.now()
	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Upsert(ctx, session); err != nil {
		return Session{}, "", apperrors.Wrapf(err, "[sessions Create] store session")
	}
	value, err := m.signer.Sign(session)
	if err != nil {
		_ = m.repo.Delete(ctx, session.ID)
		return Session{}, "", err
	}
	return session, value, nil
}

// Load resolves a cookie value to a live session. Every failure matches
// errors.ErrUnauthorized through PublicCode.
func (m *Manager) Load(ctx context.Context, cookieValue string) (Session, error) {
	if cookieValue == "" {
		return Session{}, apperrors.ErrUnauthorized
	}
	sessionID, err := m.signer.Verify(cookieValue)
	if err != nil {
		return Session{}, err
	}
	session, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.Expired(m.now()) {
		return Session{}, apperrors.ErrSessionExpired
	}
	return session, nil
}

// Destroy deletes the session a cookie refers to. A cookie that does not
// verify has nothing to destroy and is not an error.
func (m *Manager) Destroy(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}
	sessionID, err := m.signer.Verify(cookieValue)
	if err != nil {
		return nil
	}
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		return apperrors.Join(apperrors.ErrSessionDestroyFailed, err)
	}
	return nil
}
