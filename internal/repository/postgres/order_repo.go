package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

// OrderRepo implements repository.OrderRepository using PostgreSQL.
type OrderRepo struct{ db *DB }

// NewOrderRepo constructs an order repository.
func NewOrderRepo(db *DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithEvent inserts the order, its items and the outbox event in a
// single transaction. A failure on any insert rolls back all of them, so an
// order row never exists without its event and vice versa.
func (r *OrderRepo) CreateWithEvent(ctx context.Context, o *model.Order, ev *model.OutboxEvent) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer finishTx(ctx, tx, &err)

	const insOrder = `
INSERT INTO orders (id, owner_id, status, total) VALUES ($1, $2, $3, $4)`
	if _, err = tx.Exec(ctx, insOrder, o.ID, o.OwnerID, string(o.Status), o.Total); err != nil {
		return err
	}

	const insItem = `
INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range o.Items {
		if _, err = tx.Exec(ctx, insItem, it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal); err != nil {
			return err
		}
	}

	const insEvent = `
INSERT INTO outbox_events (id, topic, aggregate_id, event_type, payload, status)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.Exec(ctx, insEvent, ev.ID, ev.Topic, ev.AggregateID, ev.EventType, ev.Payload, string(ev.Status))
	return err
}

// GetByID loads an order and its items.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const q = `
SELECT id, owner_id, status, total, created_at FROM orders WHERE id=$1`
	var o model.Order
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.OwnerID, &o.Status, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List returns one page of orders, newest first, plus the total count. Items
// are loaded per order; pages are small enough that this stays cheap.
func (r *OrderRepo) List(ctx context.Context, page, size int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
SELECT id, owner_id, status, total, created_at
FROM orders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.db.Pool.Query(ctx, q, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		items, err := r.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}
	return out, total, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	const q = `
SELECT id, order_id, product_id, quantity, unit_price, subtotal
FROM order_items WHERE order_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
