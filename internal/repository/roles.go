package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/model"
)

// RoleRepository persists roles and the (user, role) association set. The
// association is keyed by the pair itself; at most one row per pair.
type RoleRepository interface {
	// GetByName loads a role by its unique name.
	GetByName(ctx context.Context, name string) (*model.Role, error)
	// Associate inserts a (user, role) pair. Returns errs.ErrAssociationExists
	// when the pair is already linked.
	Associate(ctx context.Context, userID, roleID uuid.UUID) error
	// Unlink deletes a (user, role) pair. Returns errs.ErrAssociationNotFound
	// when the pair is absent.
	Unlink(ctx context.Context, userID, roleID uuid.UUID) error
	// HasRole reports whether the user is linked to the named role.
	HasRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
	// NamesForUser returns the role names linked to the user.
	NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
