package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	"github.com/Apurer/henri-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

// ErrInvalidInput signals a cart mutation with a bad quantity.
var ErrInvalidInput = errors.New("invalid cart input")

// Service implements cart operations on top of the live catalog.
type Service struct {
	products ports.ProductLookup
}

func NewService(products ports.ProductLookup) *Service {
	return &Service{products: products}
}

// Add requires an existing, active product.
func (s *Service) Add(ctx context.Context, cart *domain.Cart, productID int64, qty int) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	if qty <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidQuantity)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return catalogports.ErrNotFound
	}
	return cart.Add(productID, qty)
}

// SetQuantity only touches lines already in the cart, so it never admits a
// product that Add would reject.
func (s *Service) SetQuantity(_ context.Context, cart *domain.Cart, productID int64, qty int) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	if cart.Quantity(productID) == 0 {
		return nil
	}
	cart.SetQuantity(productID, qty)
	return nil
}

func (s *Service) Remove(_ context.Context, cart *domain.Cart, productID int64) {
	if cart == nil {
		return
	}
	cart.Remove(productID)
}

// Snapshot prices the cart at current catalog prices, dropping lines whose product is gone.
func (s *Service) Snapshot(ctx context.Context, cart domain.Cart) (*domain.Summary, error) {
	lines := make([]domain.SummaryLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.Quantity <= 0 {
			continue
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, catalogports.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.SummaryLine{Product: product, Quantity: line.Quantity})
	}
	return domain.NewSummary(lines), nil
}

var _ ports.Service = (*Service)(nil)
