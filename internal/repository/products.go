package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/model"
)

// ProductRepository provides catalog access. GetByIDs is the pricing boundary
// used by order placement.
type ProductRepository interface {
	// Create inserts a product. Returns errs.ErrDuplicatedResource when the
	// owner already has a product with that name.
	Create(ctx context.Context, p *model.Product) error
	// GetByName loads a product by name.
	GetByName(ctx context.Context, name string) (*model.Product, error)
	// GetByIDs batch-loads products; ids absent from the catalog are simply
	// missing from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	// List returns one page of products plus the total row count.
	List(ctx context.Context, page, size int) ([]model.Product, int64, error)
}
