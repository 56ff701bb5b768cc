// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/model"
)

// UserRepository provides CRUD access for user accounts keyed by id and email.
type UserRepository interface {
	// CreateWithRole inserts a new user and links it to the named role in one
	// transaction, so a failed registration never leaves a role-less user row.
	// Returns errs.ErrEmailExists on a taken email and errs.ErrInvalidInput on
	// an unknown role.
	CreateWithRole(ctx context.Context, u *model.User, roleName string) error
	// GetByID loads a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
