package users

import "context"

// Repo is the capability the login flow needs from a user store.
// Get returns errors.ErrUserRecordNotFound when no record exists for id.
type Repo interface {
	Get(ctx context.Context, id string) (*User, error)
	Upsert(ctx context.Context, user *User) error
}
