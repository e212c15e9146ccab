// Package firestorerepo stores user records as Firestore documents keyed by
// the provider subject.
package firestorerepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/users"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ users.Repo = (*Store)(nil)

// UserDoc is the document shape in the users collection.
type UserDoc struct {
	ID          string    `firestore:"id"`
	DisplayName string    `firestore:"display_name"`
	Email       string    `firestore:"email"`
	AvatarURL   string    `firestore:"avatar_url"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func toDoc(u *users.User) UserDoc {
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return UserDoc{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		UpdatedAt:   updatedAt.UTC(),
	}
}

func (d UserDoc) toUser() *users.User {
	return &users.User{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		AvatarURL:   d.AvatarURL,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Store implements users.Repo on a Firestore collection.
type Store struct {
	client     *firestore.Client
	collection string
}

// New connects to Firestore. An empty or "(default)" database uses the default one.
func New(ctx context.Context, projectID, database, collection string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}

	var (
		client *firestore.Client
		err    error
	)
	if database != "" && database != firestore.DefaultDatabaseID {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, database)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &Store{client: client, collection: collection}, nil
}

// Close releases the Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Upsert overwrites the whole document, so the latest login wins.
func (s *Store) Upsert(ctx context.Context, user *users.User) error {
	if !user.Valid() {
		return apperrors.Wrapf(apperrors.ErrUserStoreFailed, "user id is required")
	}
	if _, err := s.client.Collection(s.collection).Doc(user.ID).Set(ctx, toDoc(user)); err != nil {
		return apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("set user %s: %w", user.ID, err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*users.User, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apperrors.ErrUserRecordNotFound
	}
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("get user %s: %w", id, err))
	}

	var doc UserDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, apperrors.Join(apperrors.ErrUserStoreFailed, fmt.Errorf("decode user %s: %w", id, err))
	}
	if doc.ID == "" {
		doc.ID = snap.Ref.ID
	}
	return doc.toUser(), nil
}
