package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/errs"
	"orderhub/internal/repository"
)

// AdminRole grants access to every protected resource regardless of ownership.
const AdminRole = "ADMIN"

// RoleService manages the user-role association set and answers the
// authorization predicates used by every protected operation.
type RoleService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewRoleService constructs RoleService with required dependencies.
func NewRoleService(users repository.UserRepository, roles repository.RoleRepository) *RoleService {
	return &RoleService{users: users, roles: roles}
}

// Associate links a role to a user. A missing user surfaces as ErrUserNotFound
// but a missing role collapses to ErrInvalidInput so the valid role namespace
// is not disclosed.
func (s *RoleService) Associate(ctx context.Context, userID uuid.UUID, roleName string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return errs.ErrInvalidInput
	}
	return s.roles.Associate(ctx, userID, role.ID)
}

// Unlink removes a (user, role) association.
func (s *RoleService) Unlink(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		// unknown role means the pair cannot be linked
		return errs.ErrAssociationNotFound
	}
	return s.roles.Unlink(ctx, userID, role.ID)
}

// Verify reports whether the user holds the named role. Pure read.
func (s *RoleService) Verify(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	return s.roles.HasRole(ctx, userID, roleName)
}

// NamesForUser returns the role names linked to the user.
func (s *RoleService) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.roles.NamesForUser(ctx, userID)
}

// IsOwnerOrAdmin is the single authorization rule for order access: owners
// pass without any role query, everyone else needs ADMIN.
func (s *RoleService) IsOwnerOrAdmin(ctx context.Context, actorID, ownerID uuid.UUID) (bool, error) {
	if actorID == ownerID {
		return true, nil
	}
	return s.roles.HasRole(ctx, actorID, AdminRole)
}
