package ports

import (
	"context"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/shopspring/decimal"
)

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Name          string
	Category      string
	CurrentStock  float64
	MinimumStock  float64
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	DemoPrice     decimal.Decimal
	Description   string
	ImageURL      string
	IsActive      bool
}

// Service exposes catalog use cases to adapters.
type Service interface {
	ListActive(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	RelatedTo(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)

	ListAll(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
