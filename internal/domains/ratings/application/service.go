package application

import (
	"context"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
)

// Service handles review submission and moderation.
type Service struct {
	repo     ports.Repository
	products ports.ProductLookup
}

func NewService(repo ports.Repository, products ports.ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

// Submit stores an unapproved review for an existing product.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Rating, error) {
	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}
	rating, err := domain.NewRating(input.ProductID, input.CustomerName, valueOrDefault(input.Rating), input.Review)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, rating)
}

// ListApprovedFor returns approved reviews newest first with their mean.
func (s *Service) ListApprovedFor(ctx context.Context, productID int64) (*ports.ProductRatings, error) {
	ratings, err := s.repo.List(ctx, ports.ListFilter{ProductID: productID, ApprovedOnly: true})
	if err != nil {
		return nil, err
	}
	return &ports.ProductRatings{Ratings: ratings, Average: domain.Average(ratings)}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Rating, error) {
	return s.repo.List(ctx, ports.ListFilter{})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Rating, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id int64) (*domain.Rating, error) {
	rating, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rating.Approve()
	return s.repo.Update(ctx, rating)
}

func (s *Service) Edit(ctx context.Context, id int64, input ports.EditInput) (*domain.Rating, error) {
	rating, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rating.CustomerName = input.CustomerName
	rating.Rating = valueOrDefault(input.Rating)
	rating.Review = input.Review
	rating.IsApproved = input.IsApproved
	if err := rating.Normalize(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, rating)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) DeleteForProduct(ctx context.Context, productID int64) error {
	return s.repo.DeleteByProduct(ctx, productID)
}

func valueOrDefault(v *int) int {
	if v == nil {
		return domain.DefaultRating
	}
	return *v
}

var _ ports.Service = (*Service)(nil)
