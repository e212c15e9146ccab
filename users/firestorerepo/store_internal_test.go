package firestorerepo

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-google-login/users"
	"github.com/stretchr/testify/require"
)

func TestDocRoundTrip(t *testing.T) {
	when := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	u := &users.User{ID: "42", DisplayName: "Grace", Email: "grace@example.com", AvatarURL: "https://img/g.png", UpdatedAt: when}

	doc := toDoc(u)
	require.Equal(t, "42", doc.ID)
	require.Equal(t, u, doc.toUser())
}

func TestToDocStampsMissingTime(t *testing.T) {
	doc := toDoc(&users.User{ID: "1"})
	require.False(t, doc.UpdatedAt.IsZero())
}

func TestNewValidatesArguments(t *testing.T) {
	_, err := New(context.Background(), "", "", "users")
	require.ErrorContains(t, err, "projectID")

	_, err = New(context.Background(), "project", "", "")
	require.ErrorContains(t, err, "collection")
}
