package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	catalogmapper "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/http/mapper"
)

// AddItemPayload is the add-to-cart body. Quantity defaults to 1 when omitted.
type AddItemPayload struct {
	ProductID int64 `json:"productId" form:"product_id" binding:"required"`
	Quantity  *int  `json:"quantity,omitempty" form:"quantity"`
}

// QuantityPayload sets a line quantity; zero or less removes the line.
// Quantity defaults to 1 when omitted.
type QuantityPayload struct {
	Quantity *int `json:"quantity,omitempty" form:"quantity"`
}

// Line is one priced cart row.
type Line struct {
	Product  catalogmapper.PublicProduct `json:"product"`
	Quantity int                         `json:"quantity"`
	Total    decimal.Decimal             `json:"total"`
}

// Cart is the priced cart view.
type Cart struct {
	Items    []Line          `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// ResolvedQuantity applies the default of one unit.
func (p AddItemPayload) ResolvedQuantity() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

// ResolvedQuantity applies the default of one unit.
func (p QuantityPayload) ResolvedQuantity() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

// FromSummary renders a priced snapshot.
func FromSummary(summary *domain.Summary) Cart {
	out := Cart{Items: []Line{}, Subtotal: decimal.Zero, Total: decimal.Zero}
	if summary == nil {
		return out
	}
	for _, line := range summary.Lines {
		out.Items = append(out.Items, Line{
			Product:  catalogmapper.ToPublicProduct(line.Product),
			Quantity: line.Quantity,
			Total:    line.Total,
		})
		out.Count += line.Quantity
	}
	out.Subtotal = summary.Subtotal
	out.Total = summary.Total
	return out
}
