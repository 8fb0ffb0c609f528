package ports

import (
	"context"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
)

// ProductLookup confirms the rated product exists.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// SubmitInput is a shopper review. A nil Rating defaults to 5.
type SubmitInput struct {
	ProductID    int64
	CustomerName string
	Rating       *int
	Review       string
}

// EditInput overwrites every moderated field.
type EditInput struct {
	CustomerName string
	Rating       *int
	Review       string
	IsApproved   bool
}

// ProductRatings is the public view for one product.
type ProductRatings struct {
	Ratings []*domain.Rating
	Average float64
}

// Service exposes rating use cases.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Rating, error)
	ListApprovedFor(ctx context.Context, productID int64) (*ProductRatings, error)

	ListAll(ctx context.Context) ([]*domain.Rating, error)
	Get(ctx context.Context, id int64) (*domain.Rating, error)
	Approve(ctx context.Context, id int64) (*domain.Rating, error)
	Edit(ctx context.Context, id int64, input EditInput) (*domain.Rating, error)
	Delete(ctx context.Context, id int64) error
	// DeleteForProduct runs before a product is removed.
	DeleteForProduct(ctx context.Context, productID int64) error
}
