package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrEmptyCategory     = errors.New("product category is required")
	ErrNegativePrice     = errors.New("product prices must not be negative")
	ErrNegativeThreshold = errors.New("minimum stock must not be negative")
)

// Product is a catalog entry sold by the storefront.
type Product struct {
	ID            int64
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
	CreatedAt     time.Time
}

// NewProduct builds an active product after validating required fields.
func NewProduct(name, category string, salePrice decimal.Decimal) (*Product, error) {
	p := &Product{Name: name, Category: category, SalePrice: salePrice, IsActive: true}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate trims text fields and enforces catalog invariants.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Category == "" {
		return ErrEmptyCategory
	}
	if p.SalePrice.IsNegative() || p.PurchasePrice.IsNegative() || p.DemoPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.MinimumStock < 0 {
		return ErrNegativeThreshold
	}
	return nil
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool {
	return p.CurrentStock > 0
}

// IsLowStock reports whether stock reached the reorder threshold. A zero threshold disables the check.
func (p *Product) IsLowStock() bool {
	return p.MinimumStock > 0 && p.CurrentStock <= p.MinimumStock
}

// ListPrice is the displayed MRP: the demo price when set, otherwise twice the sale price.
func (p *Product) ListPrice() decimal.Decimal {
	if p.DemoPrice.IsPositive() {
		return p.DemoPrice
	}
	return p.SalePrice.Mul(decimal.NewFromInt(2))
}

// MatchesTerm reports a case-insensitive substring match on the product name.
func (p *Product) MatchesTerm(term string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(term)))
}
