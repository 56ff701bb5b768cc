package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/model"
)

// OrderRepository persists orders together with their outbox events.
type OrderRepository interface {
	// CreateWithEvent inserts the order, its items and the outbox event in one
	// transaction. If any insert fails nothing is persisted.
	CreateWithEvent(ctx context.Context, o *model.Order, ev *model.OutboxEvent) error
	// GetByID loads an order with its items. Returns errs.ErrOrderNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// List returns one page of orders (no ownership filter) plus the total count.
	List(ctx context.Context, page, size int) ([]model.Order, int64, error)
}
