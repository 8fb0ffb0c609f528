package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

// ErrInvalidQuantity is returned when adding a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Line is one product/quantity pairing held in the shopper's session.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart keeps lines in insertion order. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add increments an existing line or appends a new one.
func (c *Cart) Add(productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity overwrites a line's quantity; qty <= 0 removes the line.
// Products not already in the cart are ignored.
func (c *Cart) SetQuantity(productID int64, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Remove drops the line for productID. Absent products are ignored.
func (c *Cart) Remove(productID int64) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Quantity returns the quantity held for productID, 0 when absent.
func (c *Cart) Quantity(productID int64) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Count is the total number of units across lines.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) Clear() { c.Lines = nil }

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// SummaryLine is a cart line joined against the live catalog.
type SummaryLine struct {
	Product  *catalogdomain.Product
	Quantity int
	Total    decimal.Decimal
}

// Summary is the priced view of a cart.
type Summary struct {
	Lines    []SummaryLine
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// IsEmpty reports whether no line resolved against the catalog.
func (s *Summary) IsEmpty() bool { return s == nil || len(s.Lines) == 0 }

// NewSummary prices each line at the product's current sale price.
func NewSummary(lines []SummaryLine) *Summary {
	subtotal := decimal.Zero
	priced := make([]SummaryLine, 0, len(lines))
	for _, line := range lines {
		line.Total = line.Product.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(line.Total)
		priced = append(priced, line)
	}
	return &Summary{Lines: priced, Subtotal: subtotal, Total: subtotal}
}
