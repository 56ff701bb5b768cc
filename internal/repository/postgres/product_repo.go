package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

// ProductRepo implements repository.ProductRepository using PostgreSQL.
type ProductRepo struct{ db *DB }

// NewProductRepo constructs a product repository.
func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

// Create inserts a new product row.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `
INSERT INTO products (id, owner_id, name, description, price, stock)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, p.ID, p.OwnerID, p.Name, p.Description, p.Price, p.Stock)
	if isUniqueViolation(err) {
		return errs.ErrDuplicatedResource
	}
	return err
}

// GetByName selects a product by name. Names are unique per owner, not
// globally, so the oldest row wins to keep the lookup deterministic.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*model.Product, error) {
	const q = `
SELECT id, owner_id, name, description, price, stock, created_at, updated_at
FROM products WHERE name=$1
ORDER BY created_at, id
LIMIT 1`
	var p model.Product
	err := r.db.Pool.QueryRow(ctx, q, name).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDs batch-loads products by id. Unknown ids are silently absent from
// the result; callers compare counts.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	const q = `
SELECT id, owner_id, name, description, price, stock, created_at, updated_at
FROM products WHERE id = ANY($1)`
	rows, err := r.db.Pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// List returns one page of products ordered by creation time plus the total count.
func (r *ProductRepo) List(ctx context.Context, page, size int) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
SELECT id, owner_id, name, description, price, stock, created_at, updated_at
FROM products
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.db.Pool.Query(ctx, q, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
