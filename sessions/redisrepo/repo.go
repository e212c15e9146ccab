// Package redisrepo keeps sessions in Redis so they survive restarts and can
// be shared by several backend processes.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport failures talking to Redis.
var ErrRedisUnavailable = errors.New("redis unavailable")

var _ sessions.Repo = (*Repo)(nil)

// Repo implements sessions.Repo. Each session is a JSON value under
// prefix+sessionID with a TTL matching the session expiry.
type Repo struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

func New(rdb redis.UniversalClient, prefix string) *Repo {
	return &Repo{rdb: rdb, prefix: prefix, now: time.Now}
}

// Dial parses a redis:// URL, connects and pings.
func Dial(ctx context.Context, url, prefix string) (*Repo, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return New(rdb, prefix), nil
}

// Close closes the underlying client.
func (r *Repo) Close() error {
	return r.rdb.Close()
}

func (r *Repo) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *Repo) Upsert(ctx context.Context, session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}
	ttl := session.TTL(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(session.ID), blob, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	blob, err := r.rdb.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return sessions.Session{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	var s sessions.Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return sessions.Session{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	if s.Expired(r.now()) {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	return s, nil
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if err := r.rdb.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}
