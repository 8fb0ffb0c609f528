package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

// DisplayTimeLayout matches the back office listing format.
const DisplayTimeLayout = "2006-01-02 15:04"

// CheckoutPayload is the checkout form body.
type CheckoutPayload struct {
	Name          string `json:"name" form:"name"`
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email"`
	Address       string `json:"address" form:"address"`
	PaymentMethod string `json:"paymentMethod" form:"payment_method"`
	Notes         string `json:"notes" form:"notes"`
}

// StatusPayload is the admin order edit body.
type StatusPayload struct {
	Status string `json:"status" form:"status" binding:"required"`
	Notes  string `json:"notes" form:"notes"`
}

// Item is the HTTP representation of an order line snapshot.
type Item struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// Order is the HTTP representation of a placed order.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	UserID          *int64          `json:"userId,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
	ItemCount       int             `json:"itemCount"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedAtLabel  string          `json:"createdAtLabel"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToPlaceOrderInput combines the form with the session cart and identity.
func ToPlaceOrderInput(payload CheckoutPayload, lines []cartdomain.Line, userID *int64, idempotencyKey string) ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		Lines: lines,
		Customer: domain.Customer{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Address: payload.Address,
			UserID:  userID,
		},
		PaymentMethod:  payload.PaymentMethod,
		Notes:          payload.Notes,
		IdempotencyKey: idempotencyKey,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return Order{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.Phone,
		CustomerEmail:   order.Customer.Email,
		CustomerAddress: order.Customer.Address,
		UserID:          order.Customer.UserID,
		Subtotal:        order.Subtotal,
		Total:           order.Total,
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		ItemCount:       order.ItemCount(),
		Items:           items,
		CreatedAt:       order.CreatedAt,
		CreatedAtLabel:  order.CreatedAt.Format(DisplayTimeLayout),
		UpdatedAt:       order.UpdatedAt,
	}
}

// FromDomainOrderList converts a slice of orders.
func FromDomainOrderList(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
