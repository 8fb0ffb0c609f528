package ports

import (
	"context"

	"github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

// ProductLookup resolves cart lines against the catalog.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// Service mutates and prices session carts.
type Service interface {
	Add(ctx context.Context, cart *domain.Cart, productID int64, qty int) error
	SetQuantity(ctx context.Context, cart *domain.Cart, productID int64, qty int) error
	Remove(ctx context.Context, cart *domain.Cart, productID int64)
	Snapshot(ctx context.Context, cart domain.Cart) (*domain.Summary, error)
}
