package ports

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
)

var ErrNotFound = errors.New("rating not found")

// ListFilter narrows List. ProductID 0 means every product.
type ListFilter struct {
	ProductID    int64
	ApprovedOnly bool
}

// Repository persists ratings.
type Repository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	Update(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
	// List returns ratings newest first.
	List(ctx context.Context, filter ListFilter) ([]*domain.Rating, error)
}
