package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

// DefaultRelatedLimit is how many related products the detail view shows.
const DefaultRelatedLimit = 4

// Service orchestrates catalog browsing and admin product management.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListActive returns every product visible to shoppers.
func (s *Service) ListActive(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ProductFilter{ActiveOnly: true})
}

// ListByCategory returns active products with an exact category match.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ProductFilter{ActiveOnly: true, Category: category})
}

// Search matches active product names case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ProductFilter{ActiveOnly: true, NameTerm: strings.TrimSpace(term)})
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// RelatedTo lists other active products in the same category.
func (s *Service) RelatedTo(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return s.repo.List(ctx, ports.ProductFilter{
		ActiveOnly: true,
		Category:   product.Category,
		ExcludeID:  product.ID,
		Limit:      limit,
	})
}

// Categories returns the distinct categories of active products.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// ListAll returns every product, active or not, sorted by name.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ProductFilter{OrderBy: ports.OrderByName})
}

func (s *Service) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	product := &domain.Product{}
	apply(product, input)
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(product, input)
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, product)
}

// Delete removes the product permanently. Historical orders keep their item snapshots.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func apply(p *domain.Product, input ports.ProductInput) {
	p.Name = input.Name
	p.Category = input.Category
	p.CurrentStock = input.CurrentStock
	p.MinimumStock = input.MinimumStock
	p.SalePrice = input.SalePrice
	p.PurchasePrice = input.PurchasePrice
	p.DemoPrice = input.DemoPrice
	p.Description = input.Description
	p.ImageURL = strings.TrimSpace(input.ImageURL)
	p.IsActive = input.IsActive
}

var _ ports.Service = (*Service)(nil)
