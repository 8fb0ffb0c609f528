package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CurrentStock  float64         `json:"currentStock"`
	MinimumStock  float64         `json:"minimumStock"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	DemoPrice     decimal.Decimal `json:"demoPrice"`
	ListPrice     decimal.Decimal `json:"listPrice"`
	Description   string          `json:"description,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	IsActive      bool            `json:"isActive"`
	InStock       bool            `json:"inStock"`
	LowStock      bool            `json:"lowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PublicProduct hides cost basis and thresholds from shoppers.
type PublicProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	ListPrice    decimal.Decimal `json:"listPrice"`
	CurrentStock float64         `json:"currentStock"`
	InStock      bool            `json:"inStock"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

// ProductPayload captures admin create/update bodies. IsActive defaults to true when omitted.
type ProductPayload struct {
	Name          string           `json:"name" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	CurrentStock  float64          `json:"currentStock"`
	MinimumStock  float64          `json:"minimumStock"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	DemoPrice     *decimal.Decimal `json:"demoPrice,omitempty"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"imageUrl"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// ToProductInput converts the admin payload into the service input.
func ToProductInput(payload ProductPayload) ports.ProductInput {
	input := ports.ProductInput{
		Name:         payload.Name,
		Category:     payload.Category,
		CurrentStock: payload.CurrentStock,
		MinimumStock: payload.MinimumStock,
		SalePrice:    payload.SalePrice,
		Description:  payload.Description,
		ImageURL:     payload.ImageURL,
		IsActive:     true,
	}
	if payload.PurchasePrice != nil {
		input.PurchasePrice = *payload.PurchasePrice
	}
	if payload.DemoPrice != nil {
		input.DemoPrice = *payload.DemoPrice
	}
	if payload.IsActive != nil {
		input.IsActive = *payload.IsActive
	}
	return input
}

// FromDomainProduct renders the admin view.
func FromDomainProduct(p *domain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		CurrentStock:  p.CurrentStock,
		MinimumStock:  p.MinimumStock,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		DemoPrice:     p.DemoPrice,
		ListPrice:     p.ListPrice(),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		InStock:       p.InStock(),
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainProductList renders a slice of admin views.
func FromDomainProductList(products []*domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

// ToPublicProduct renders the shopper view.
func ToPublicProduct(p *domain.Product) PublicProduct {
	if p == nil {
		return PublicProduct{}
	}
	return PublicProduct{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		SalePrice:    p.SalePrice,
		ListPrice:    p.ListPrice(),
		CurrentStock: p.CurrentStock,
		InStock:      p.InStock(),
		Description:  p.Description,
		ImageURL:     p.ImageURL,
	}
}

// ToPublicProductList renders a slice of shopper views.
func ToPublicProductList(products []*domain.Product) []PublicProduct {
	out := make([]PublicProduct, 0, len(products))
	for _, p := range products {
		out = append(out, ToPublicProduct(p))
	}
	return out
}
