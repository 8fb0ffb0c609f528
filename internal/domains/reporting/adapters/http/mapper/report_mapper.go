package mapper

import (
	"github.com/shopspring/decimal"

	ordersmapper "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type DailySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Dashboard is the admin landing payload.
type Dashboard struct {
	TotalOrders        int64                `json:"totalOrders"`
	PendingOrders      int64                `json:"pendingOrders"`
	TotalProducts      int64                `json:"totalProducts"`
	LowStockProducts   int64                `json:"lowStockProducts"`
	RecentOrders       []ordersmapper.Order `json:"recentOrders"`
	OrdersByStatus     []StatusCount        `json:"ordersByStatus"`
	ProductsByCategory []CategoryCount      `json:"productsByCategory"`
	DailySales         []DailySales         `json:"dailySales"`
	TopProducts        []TopProduct         `json:"topProducts"`
	TotalRevenue       decimal.Decimal      `json:"totalRevenue"`
}

type Stats struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	OrdersByStatus []StatusCount   `json:"ordersByStatus"`
}

func FromDashboard(d *domain.Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	out := Dashboard{
		TotalOrders:        d.TotalOrders,
		PendingOrders:      d.PendingOrders,
		TotalProducts:      d.TotalProducts,
		LowStockProducts:   d.LowStockProducts,
		RecentOrders:       ordersmapper.FromDomainOrderList(d.RecentOrders),
		OrdersByStatus:     fromStatusCounts(d.OrdersByStatus),
		ProductsByCategory: make([]CategoryCount, 0, len(d.ProductsByCategory)),
		DailySales:         make([]DailySales, 0, len(d.DailySales)),
		TopProducts:        make([]TopProduct, 0, len(d.TopProducts)),
		TotalRevenue:       d.TotalRevenue,
	}
	for _, c := range d.ProductsByCategory {
		out.ProductsByCategory = append(out.ProductsByCategory, CategoryCount{Category: c.Category, Count: c.Count})
	}
	for _, s := range d.DailySales {
		out.DailySales = append(out.DailySales, DailySales{Date: s.Date, Revenue: s.Revenue, Orders: s.Orders})
	}
	for _, p := range d.TopProducts {
		out.TopProducts = append(out.TopProducts, TopProduct{Name: p.Name, Quantity: p.Quantity})
	}
	return out
}

func FromStats(s *domain.Stats) Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{TotalRevenue: s.TotalRevenue, OrdersByStatus: fromStatusCounts(s.OrdersByStatus)}
}

func fromStatusCounts(counts []domain.StatusCount) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, StatusCount{Status: string(c.Status), Count: c.Count})
	}
	return out
}
