package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"orderhub/internal/errs"
	"orderhub/internal/model"
	"orderhub/internal/repository"
)

// OutboxTopic is the topic the external relay consumes order events from.
const OutboxTopic = "orders-events"

// EventOrderCreated is the event type emitted for every placed order.
const EventOrderCreated = "ORDER_CREATED"

// OrderService places orders and serves order reads. Placement snapshots
// catalog prices, computes the total and persists order, items and outbox
// event as one atomic unit.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	roles    *RoleService

	// snapshot serializes the committed order for the outbox payload;
	// swappable in tests to force serialization failures.
	snapshot func(model.Order) ([]byte, error)
}

// NewOrderService constructs OrderService with required dependencies.
func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, roles *RoleService) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		roles:    roles,
		snapshot: func(o model.Order) ([]byte, error) { return json.Marshal(newOrderSnapshot(o)) },
	}
}

// Create validates the request, snapshots current catalog prices into the
// items and persists the order together with its ORDER_CREATED outbox event.
// No write happens unless every step, the event insert included, succeeds.
func (s *OrderService) Create(ctx context.Context, ownerID uuid.UUID, items []model.OrderItemRequest) (*model.Order, error) {
	if len(items) == 0 {
		return nil, errs.ErrInvalidOrder
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, errs.ErrInvalidOrder
		}
	}

	distinct := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			distinct = append(distinct, it.ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	// One generic failure for unknown ids; never disclose which id missed.
	if len(products) != len(distinct) {
		return nil, errs.ErrInvalidOrder
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	orderID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	order := model.Order{
		ID:        orderID,
		OwnerID:   ownerID,
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	total := decimal.Zero
	for _, it := range items {
		itemID, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		unitPrice := byID[it.ProductID].Price
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(subtotal)
		order.Items = append(order.Items, model.OrderItem{
			ID:        itemID,
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
	}
	// unreachable with quantity >= 1 and positive prices, checked anyway
	if !total.IsPositive() {
		return nil, errs.ErrInvalidOrder
	}
	order.Total = total

	payload, err := s.snapshot(order)
	if err != nil {
		return nil, fmt.Errorf("serialize order snapshot: %w", err)
	}
	eventID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	event := model.OutboxEvent{
		ID:          eventID,
		Topic:       OutboxTopic,
		AggregateID: orderID,
		EventType:   EventOrderCreated,
		Payload:     payload,
		Status:      model.OutboxPending,
		CreatedAt:   order.CreatedAt,
	}

	if err := s.orders.CreateWithEvent(ctx, &order, &event); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByID returns an order to its owner or to an admin.
func (s *OrderService) GetByID(ctx context.Context, requesterID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ok, err := s.roles.IsOwnerOrAdmin(ctx, requesterID, order.OwnerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return order, nil
}

// List returns a page of all orders; admin only, no ownership filter.
func (s *OrderService) List(ctx context.Context, requesterID uuid.UUID, page, size int) (model.Page[model.Order], error) {
	isAdmin, err := s.roles.Verify(ctx, requesterID, AdminRole)
	if err != nil {
		return model.Page[model.Order]{}, err
	}
	if !isAdmin {
		return model.Page[model.Order]{}, errs.ErrUnauthorized
	}

	page, size = normalizePage(page, size)
	orders, total, err := s.orders.List(ctx, page, size)
	if err != nil {
		return model.Page[model.Order]{}, err
	}
	return model.Page[model.Order]{Items: orders, Page: page, Size: size, Total: total}, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// orderSnapshot is the canonical outbox payload shape, stable for consumers.
type orderSnapshot struct {
	OrderID   uuid.UUID           `json:"orderId"`
	OwnerID   uuid.UUID           `json:"ownerId"`
	Status    model.OrderStatus   `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []orderSnapshotItem `json:"items"`
}

type orderSnapshotItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func newOrderSnapshot(o model.Order) orderSnapshot {
	s := orderSnapshot{
		OrderID:   o.ID,
		OwnerID:   o.OwnerID,
		Status:    o.Status,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
	for _, it := range o.Items {
		s.Items = append(s.Items, orderSnapshotItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return s
}
