package domain

import (
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
)

const (
	RecentOrdersLimit = 10
	TopProductsLimit  = 5
	SalesWindow       = 30 * 24 * time.Hour
	// DateLayout keys daily sales buckets.
	DateLayout = "2006-01-02"
)

// StatusCount is the number of orders in one lifecycle state.
type StatusCount struct {
	Status ordersdomain.Status
	Count  int64
}

type CategoryCount struct {
	Category string
	Count    int64
}

// DailySales aggregates orders created on one UTC calendar date.
type DailySales struct {
	Date    string
	Revenue decimal.Decimal
	Orders  int64
}

// TopProduct is a product name with its units sold outside cancelled orders.
type TopProduct struct {
	Name     string
	Quantity int64
}

// Dashboard is the admin landing page aggregate. Recomputed on every request.
type Dashboard struct {
	TotalOrders        int64
	PendingOrders      int64
	TotalProducts      int64
	LowStockProducts   int64
	RecentOrders       []*ordersdomain.Order
	OrdersByStatus     []StatusCount
	ProductsByCategory []CategoryCount
	DailySales         []DailySales
	TopProducts        []TopProduct
	// TotalRevenue sums every order, cancelled ones included.
	TotalRevenue decimal.Decimal
}

// Stats is the reduced view served by the stats page.
type Stats struct {
	TotalRevenue   decimal.Decimal
	OrdersByStatus []StatusCount
}

// CompleteStatusCounts returns one entry per known status in lifecycle order,
// filling gaps with zero.
func CompleteStatusCounts(counts map[ordersdomain.Status]int64) []StatusCount {
	out := make([]StatusCount, 0, len(ordersdomain.Statuses))
	for _, status := range ordersdomain.Statuses {
		out = append(out, StatusCount{Status: status, Count: counts[status]})
	}
	return out
}
