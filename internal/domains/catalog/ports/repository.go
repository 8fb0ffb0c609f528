package ports

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// ProductFilter narrows list queries. Zero values mean "no constraint".
type ProductFilter struct {
	ActiveOnly bool
	Category   string
	NameTerm   string
	ExcludeID  int64
	Limit      int
	OrderBy    ProductOrder
}

// ProductOrder selects the sort applied by List.
type ProductOrder int

const (
	OrderByID ProductOrder = iota
	OrderByName
)

// Repository persists catalog products.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
