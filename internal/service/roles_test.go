package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

func addUser(users *fakeUsers, email string) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	users.byEmail[email] = &model.User{ID: id, Username: email, Email: email, Active: true}
	return id
}

func TestAssociate_UserAndRoleChecks(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := NewRoleService(users, roles)
	ctx := context.Background()
	userID := addUser(users, "alice@example.com")

	// missing user is a distinct not-found
	err := s.Associate(ctx, uuid.Must(uuid.NewV4()), "ADMIN")
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	// missing role collapses to invalid input, not a role-not-found
	err = s.Associate(ctx, userID, "SUPERUSER")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	require.NotErrorIs(t, err, errs.ErrUserNotFound)

	require.NoError(t, s.Associate(ctx, userID, "ADMIN"))
}

func TestAssociate_UnlinkReassociate(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := NewRoleService(users, roles)
	ctx := context.Background()
	userID := addUser(users, "alice@example.com")

	require.NoError(t, s.Associate(ctx, userID, "ADMIN"))

	err := s.Associate(ctx, userID, "ADMIN")
	require.ErrorIs(t, err, errs.ErrAssociationExists)

	require.NoError(t, s.Unlink(ctx, userID, "ADMIN"))
	err = s.Unlink(ctx, userID, "ADMIN")
	require.ErrorIs(t, err, errs.ErrAssociationNotFound)

	// re-associating after unlink succeeds again
	require.NoError(t, s.Associate(ctx, userID, "ADMIN"))
}

func TestUnlink_UnknownRole(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewRoleService(users, newFakeRoles("USER"))
	userID := addUser(users, "alice@example.com")

	err := s.Unlink(context.Background(), userID, "SUPERUSER")
	require.ErrorIs(t, err, errs.ErrAssociationNotFound)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := NewRoleService(users, roles)
	ctx := context.Background()
	userID := addUser(users, "alice@example.com")

	has, err := s.Verify(ctx, userID, "ADMIN")
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, s.Associate(ctx, userID, "ADMIN"))
	has, err = s.Verify(ctx, userID, "ADMIN")
	require.NoError(t, err)
	require.True(t, has)
}

func TestIsOwnerOrAdmin_OwnerShortCircuits(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := NewRoleService(users, roles)
	ctx := context.Background()
	ownerID := addUser(users, "owner@example.com")

	ok, err := s.IsOwnerOrAdmin(ctx, ownerID, ownerID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, roles.hasRoleCalls, "owner check must not query roles")
}

func TestIsOwnerOrAdmin_AdminFallback(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := NewRoleService(users, roles)
	ctx := context.Background()
	ownerID := addUser(users, "owner@example.com")
	adminID := addUser(users, "admin@example.com")
	otherID := addUser(users, "other@example.com")
	require.NoError(t, s.Associate(ctx, adminID, "ADMIN"))

	ok, err := s.IsOwnerOrAdmin(ctx, adminID, ownerID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.IsOwnerOrAdmin(ctx, otherID, ownerID)
	require.NoError(t, err)
	require.False(t, ok)
}
