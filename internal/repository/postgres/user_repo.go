package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

// UserRepo implements repository.UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// CreateWithRole inserts the user row and its role link in one transaction.
// Either both rows commit or neither does; a failed registration must not
// burn the email with a role-less user row.
func (r *UserRepo) CreateWithRole(ctx context.Context, u *model.User, roleName string) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer finishTx(ctx, tx, &err)

	const insUser = `
INSERT INTO users (id, username, email, password_hash, active, revoked)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.Exec(ctx, insUser, u.ID, u.Username, u.Email, u.PasswordHash, u.Active, u.Revoked)
	if isUniqueViolation(err) {
		err = errs.ErrEmailExists
	}
	if err != nil {
		return err
	}

	const insRole = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name=$2`
	tag, err := tx.Exec(ctx, insRole, u.ID, roleName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// unknown role name; disclose nothing about the role namespace
		err = errs.ErrInvalidInput
	}
	return err
}

// GetByID selects a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, username, email, password_hash, active, revoked, created_at, updated_at
FROM users WHERE id=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, username, email, password_hash, active, revoked, created_at, updated_at
FROM users WHERE email=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.Revoked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
