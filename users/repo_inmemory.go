package users

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps users for the lifetime of the process only.
type InMemoryRepo struct {
	users map[string]*User
	lock  sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		users: make(map[string]*User),
	}
}

// Upsert replaces any record with the same ID (last write wins).
func (ur *InMemoryRepo) Upsert(_ context.Context, user *User) error {
	if !user.Valid() {
		return apperrors.Wrapf(apperrors.ErrUserStoreFailed, "user id is required")
	}
	stored := user.Clone()
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.users[stored.ID] = stored
	return nil
}

func (ur *InMemoryRepo) Get(_ context.Context, id string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserRecordNotFound
	}
	return u.Clone(), nil
}

// Len returns the number of stored records.
func (ur *InMemoryRepo) Len() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users)
}

// Clear drops every record, as a process restart would.
func (ur *InMemoryRepo) Clear() {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.users = make(map[string]*User)
}
