package users

import (
	"strings"
	"time"
)

// User is the profile copied from the identity provider on every login.
// ID is the provider's stable subject identifier.
type User struct {
	ID          string    `json:"id"`                   // Provider subject ("sub")
	DisplayName string    `json:"name"`                 // Full display name
	Email       string    `json:"email"`                // Primary email
	AvatarURL   string    `json:"avatar_url,omitempty"` // Profile picture
	UpdatedAt   time.Time `json:"-"`                    // Last successful login
}

// Valid reports whether the record carries a usable identifier.
func (u *User) Valid() bool {
	return u != nil && strings.TrimSpace(u.ID) != ""
}

// Clone returns a copy so stores never share memory with callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
