package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

// RoleRepo implements repository.RoleRepository using PostgreSQL. The user-role
// association is a bare (user_id, role_id) pair table with the pair as its
// primary key, so uniqueness is enforced by the key itself.
type RoleRepo struct{ db *DB }

// NewRoleRepo constructs a role repository.
func NewRoleRepo(db *DB) *RoleRepo { return &RoleRepo{db: db} }

// GetByName selects a role by its unique name.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*model.Role, error) {
	const q = `SELECT id, name, created_at FROM roles WHERE name=$1`
	var role model.Role
	err := r.db.Pool.QueryRow(ctx, q, name).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// callers decide how much to disclose about missing roles
			return nil, errs.ErrInvalidInput
		}
		return nil, err
	}
	return &role, nil
}

// Associate inserts a (user, role) pair.
func (r *RoleRepo) Associate(ctx context.Context, userID, roleID uuid.UUID) error {
	const q = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	_, err := r.db.Pool.Exec(ctx, q, userID, roleID)
	if isUniqueViolation(err) {
		return errs.ErrAssociationExists
	}
	return err
}

// Unlink deletes a (user, role) pair.
func (r *RoleRepo) Unlink(ctx context.Context, userID, roleID uuid.UUID) error {
	const q = `DELETE FROM user_roles WHERE user_id=$1 AND role_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, userID, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrAssociationNotFound
	}
	return nil
}

// HasRole reports whether the user is linked to the named role.
func (r *RoleRepo) HasRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM user_roles ur
  JOIN roles ro ON ro.id = ur.role_id
  WHERE ur.user_id=$1 AND ro.name=$2
)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, userID, roleName).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// NamesForUser returns the role names linked to the user, name-ordered.
func (r *RoleRepo) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	const q = `
SELECT ro.name FROM user_roles ur
JOIN roles ro ON ro.id = ur.role_id
WHERE ur.user_id=$1
ORDER BY ro.name`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
