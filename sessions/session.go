package sessions

import "time"

// Session is the server-side half of a login. The browser only holds a signed
// reference to ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"` // users.User.ID of the authenticated user
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL is the remaining lifetime at now, never negative.
func (s Session) TTL(now time.Time) time.Duration {
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
