package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// DefaultPaymentMethod is cash on delivery.
const DefaultPaymentMethod = "cod"

// OrderNumberPrefix precedes the zero-padded sequence number.
const OrderNumberPrefix = "ORD"

var (
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrMissingName     = errors.New("customer name is required")
	ErrMissingPhone    = errors.New("customer phone is required")
	ErrMissingEmail    = errors.New("customer email is required")
	ErrMissingAddress  = errors.New("customer address is required")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range Statuses {
		if s == status {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// FormatOrderNumber renders a sequence value, e.g. 1 -> ORD000001.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", OrderNumberPrefix, seq)
}

// Customer holds contact details captured at checkout. UserID links a logged-in account.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	UserID  *int64 `json:"userId,omitempty"`
}

// Validate trims every field and requires all four contact fields.
func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	switch {
	case c.Name == "":
		return ErrMissingName
	case c.Phone == "":
		return ErrMissingPhone
	case c.Email == "":
		return ErrMissingEmail
	case c.Address == "":
		return ErrMissingAddress
	}
	return nil
}

// Item snapshots a product line at purchase time.
type Item struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// NewItem computes the line total from unit price and quantity.
func NewItem(productID int64, name string, qty int, unitPrice decimal.Decimal) (Item, error) {
	if qty <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}, nil
}

// Order is a placed checkout with immutable item snapshots.
type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	Customer       Customer        `json:"customer"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	PaymentMethod  string          `json:"paymentMethod"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
	RequestHash    string          `json:"requestHash,omitempty"`
	Items          []Item          `json:"items"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewOrder builds a pending order; subtotal and total are the sum of item totals.
func NewOrder(customer Customer, paymentMethod, notes string, items []Item) (*Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	subtotal := decimal.Zero
	snapshot := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		subtotal = subtotal.Add(item.Total)
		snapshot = append(snapshot, item)
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	return &Order{
		Customer:      customer,
		Subtotal:      subtotal,
		Total:         subtotal,
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Notes:         strings.TrimSpace(notes),
		Items:         snapshot,
	}, nil
}

// UpdateStatus applies an admin status change together with notes.
func (o *Order) UpdateStatus(status Status, notes string) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	o.Status = parsed
	o.Notes = notes
	return nil
}

// ItemCount sums item quantities.
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Customer.UserID != nil {
		id := *o.Customer.UserID
		clone.Customer.UserID = &id
	}
	clone.Items = append([]Item(nil), o.Items...)
	return &clone
}
