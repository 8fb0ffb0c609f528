package ports

import (
	"context"
	"errors"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
)

// ErrIdempotencyConflict indicates the same key was used with a different checkout payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// PlaceOrderInput is the checkout command. Lines come from the session cart.
type PlaceOrderInput struct {
	Lines          []cartdomain.Line `json:"lines"`
	Customer       domain.Customer   `json:"customer"`
	PaymentMethod  string            `json:"paymentMethod"`
	Notes          string            `json:"notes"`
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
}

// Service exposes order use cases.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, email string) ([]*domain.Order, error)

	List(ctx context.Context, status string) ([]*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string, notes string) (*domain.Order, error)
}
