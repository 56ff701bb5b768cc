// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// User represents a registered account. PasswordHash is an opaque one-way hash.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string // unique
	PasswordHash string
	Active       bool
	Revoked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named authorization role (e.g. USER, ADMIN).
type Role struct {
	ID        uuid.UUID
	Name      string // unique
	CreatedAt time.Time
}

// Product is a catalog entry. Stock is stored but never decremented by order
// placement; Price is the mutable source the order snapshot is taken from.
type Product struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderStatus is the order lifecycle state. Only StatusPending is produced here.
type OrderStatus string

const StatusPending OrderStatus = "pending"

// Order is an immutable committed purchase with its priced items.
type Order struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Status    OrderStatus
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem holds a price snapshot taken at order time; Subtotal always equals
// UnitPrice * Quantity.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderItemRequest is a single line of an order placement request.
type OrderItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// OutboxStatus is the relay state of an outbox row. This core only writes
// OutboxPending; the external relay owns later transitions.
type OutboxStatus string

const OutboxPending OutboxStatus = "PENDING"

// OutboxEvent is an append-only change event persisted in the same transaction
// as the state change it describes.
type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte // canonical serialized snapshot
	Status      OutboxStatus
	CreatedAt   time.Time
}

// Tokens collects an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry
}

// AuthResult is returned by register/login: the account plus a fresh token pair.
type AuthResult struct {
	User   User
	Roles  []string
	Tokens Tokens
}

// Page is one page of a list read.
type Page[T any] struct {
	Items []T
	Page  int // 1-based
	Size  int
	Total int64
}
