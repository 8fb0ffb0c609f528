package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
)

var _ ports.Reader = (*Reader)(nil)

// Reader aggregates by scanning the repositories. Suitable for the in-memory
// stack and tests; the postgres reader pushes the work into SQL.
type Reader struct {
	products catalogports.Repository
	orders   ordersports.Repository
}

func NewReader(products catalogports.Repository, orders ordersports.Repository) *Reader {
	return &Reader{products: products, orders: orders}
}

func (r *Reader) CountOrders(ctx context.Context) (int64, error) {
	orders, err := r.allOrders(ctx)
	return int64(len(orders)), err
}

func (r *Reader) OrdersByStatus(ctx context.Context) (map[ordersdomain.Status]int64, error) {
	orders, err := r.allOrders(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[ordersdomain.Status]int64{}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *Reader) CountProducts(ctx context.Context) (int64, error) {
	return r.products.Count(ctx)
}

func (r *Reader) CountLowStock(ctx context.Context) (int64, error) {
	products, err := r.allProducts(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (r *Reader) RecentOrders(ctx context.Context, limit int) ([]*ordersdomain.Order, error) {
	return r.orders.List(ctx, ordersports.ListFilter{Limit: limit})
}

func (r *Reader) ProductsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	products, err := r.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, domain.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *Reader) DailySales(ctx context.Context, since time.Time) ([]domain.DailySales, error) {
	orders, err := r.allOrders(ctx)
	if err != nil {
		return nil, err
	}
	buckets := map[string]*domain.DailySales{}
	for _, o := range orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		day := o.CreatedAt.UTC().Format(domain.DateLayout)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &domain.DailySales{Date: day, Revenue: decimal.Zero}
			buckets[day] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(o.Total)
		bucket.Orders++
	}
	out := make([]domain.DailySales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *Reader) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	orders, err := r.allOrders(ctx)
	if err != nil {
		return nil, err
	}
	sold := map[string]int64{}
	for _, o := range orders {
		if o.Status == ordersdomain.StatusCancelled {
			continue
		}
		for _, item := range o.Items {
			sold[item.ProductName] += int64(item.Quantity)
		}
	}
	out := make([]domain.TopProduct, 0, len(sold))
	for name, qty := range sold {
		out = append(out, domain.TopProduct{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Reader) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	orders, err := r.allOrders(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total, nil
}

func (r *Reader) allOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	return r.orders.List(ctx, ordersports.ListFilter{})
}

func (r *Reader) allProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	return r.products.List(ctx, catalogports.ProductFilter{})
}
