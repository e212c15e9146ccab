// Package sqliterepo persists user records in a single SQLite file.
package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/users"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	avatar_url   TEXT NOT NULL DEFAULT '',
	updated_at   INTEGER NOT NULL
);
`

const upsertUser = `
INSERT INTO users (id, display_name, email, avatar_url, updated_at)
VALUES (?1, ?2, ?3, ?4, ?5)
ON CONFLICT(id) DO UPDATE SET
	display_name = excluded.display_name,
	email        = excluded.email,
	avatar_url   = excluded.avatar_url,
	updated_at   = excluded.updated_at;
`

const selectUser = `
SELECT id, display_name, email, avatar_url, updated_at
FROM users
WHERE id = ?1;
`

var _ users.Repo = (*Store)(nil)

// Store implements users.Repo over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Upsert(ctx context.Context, user *users.User) error {
	if !user.Valid() {
		return apperrors.Wrapf(apperrors.ErrUserStoreFailed, "user id is required")
	}
	updatedAt := user.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, upsertUser,
		user.ID, user.DisplayName, user.Email, user.AvatarURL, toMillis(updatedAt))
	if err != nil {
		return apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("upsert user %s: %w", user.ID, err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*users.User, error) {
	var (
		u         users.User
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, selectUser, id).
		Scan(&u.ID, &u.DisplayName, &u.Email, &u.AvatarURL, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserRecordNotFound
	}
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("get user %s: %w", id, err))
	}
	u.UpdatedAt = fromMillis(updatedAt)
	return &u, nil
}

// Delete removes a record. Logout never calls this; it exists for tests and tooling.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?1`, id); err != nil {
		return apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("delete user %s: %w", id, err))
	}
	return nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
