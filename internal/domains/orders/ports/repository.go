package ports

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateIdempotencyKey is returned by Place when another order already holds the key.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

// PlaceOptions tunes the atomic placement unit.
type PlaceOptions struct {
	AllowBackorders bool
}

// ListFilter narrows List. Empty fields mean no constraint.
type ListFilter struct {
	Status        domain.Status
	CustomerEmail string
	Limit         int
}

// Repository persists orders.
type Repository interface {
	// Place allocates the next order number, decrements stock for every item and
	// stores the order with its items as one atomic unit. Stock shortfalls surface
	// as catalog ports.ErrInsufficientStock and leave nothing behind.
	Place(ctx context.Context, order *domain.Order, opts PlaceOptions) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// List returns orders newest first.
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, notes string) (*domain.Order, error)
}
