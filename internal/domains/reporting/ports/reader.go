package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
)

// Reader runs the read-only aggregations behind the admin dashboard.
type Reader interface {
	CountOrders(ctx context.Context) (int64, error)
	OrdersByStatus(ctx context.Context) (map[ordersdomain.Status]int64, error)
	CountProducts(ctx context.Context) (int64, error)
	// CountLowStock counts products with minimum_stock > 0 and current_stock <= minimum_stock.
	CountLowStock(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]*ordersdomain.Order, error)
	ProductsByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	// DailySales buckets orders created at or after since, oldest date first.
	DailySales(ctx context.Context, since time.Time) ([]domain.DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// Service exposes admin reporting.
type Service interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}
