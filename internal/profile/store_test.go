package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"glampd/pkg/types"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(uid string) types.UserProfile {
	return types.UserProfile{
		UID:         uid,
		Email:       "guest@example.com",
		DisplayName: "Avery",
		Role:        types.RoleCustomer,
	}
}

func TestProvisionAssignsTimestamps(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.Provision(ctx, sample("u1"))
	require.NoError(t, err)
	require.True(t, created)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "guest@example.com", got.Email)
	require.Equal(t, types.RoleCustomer, got.Role)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.LastLogin.IsZero())
}

func TestProvisionIsIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.Provision(ctx, sample("u1"))
	require.NoError(t, err)
	require.True(t, created)

	// Second provisioning of the same identity must be a no-op.
	dup := sample("u1")
	dup.DisplayName = "Imposter"
	created, err = s.Provision(ctx, dup)
	require.NoError(t, err)
	require.False(t, created)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Avery", got.DisplayName)
}

func TestGetMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDisplayName(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.Provision(ctx, sample("u1"))
	require.NoError(t, err)

	name := "Renamed"
	require.NoError(t, s.Update(ctx, "u1", Updates{DisplayName: &name}))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.DisplayName)

	require.ErrorIs(t, s.Update(ctx, "ghost", Updates{DisplayName: &name}), ErrNotFound)
	// Empty update set is a no-op, even for missing uids.
	require.NoError(t, s.Update(ctx, "ghost", Updates{}))
}

func TestTouchLastLogin(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.Provision(ctx, sample("u1"))
	require.NoError(t, err)

	at := time.Now().Add(2 * time.Hour)
	require.NoError(t, s.TouchLastLogin(ctx, "u1", at))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.WithinDuration(t, at.UTC(), got.LastLogin, time.Second)

	require.ErrorIs(t, s.TouchLastLogin(ctx, "ghost", at), ErrNotFound)
}
