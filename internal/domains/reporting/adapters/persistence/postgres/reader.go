package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
)

var _ ports.Reader = (*Reader)(nil)

// Reader runs dashboard aggregates as raw SQL over a pgx pool. Money columns
// are cast to text and parsed into decimals to keep scale exact.
type Reader struct {
	pool *pgxpool.Pool
}

func NewReader(pool *pgxpool.Pool) *Reader {
	return &Reader{pool: pool}
}

func (r *Reader) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders`)
}

func (r *Reader) OrdersByStatus(ctx context.Context) (map[ordersdomain.Status]int64, error) {
	if err := r.ensurePool(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()
	counts := map[ordersdomain.Status]int64{}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[ordersdomain.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *Reader) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

func (r *Reader) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE minimum_stock > 0 AND current_stock <= minimum_stock`)
}

// RecentOrders returns order headers without items.
func (r *Reader) RecentOrders(ctx context.Context, limit int) ([]*ordersdomain.Order, error) {
	if err := r.ensurePool(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_number, customer_name, customer_phone, customer_email,
		       customer_address, subtotal::text, total::text, status, payment_method,
		       COALESCE(notes, ''), created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	defer rows.Close()
	var orders []*ordersdomain.Order
	for rows.Next() {
		var (
			o               ordersdomain.Order
			subtotal, total string
			status          string
		)
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Email,
			&o.Customer.Address, &subtotal, &total, &status, &o.PaymentMethod,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		o.Status = ordersdomain.Status(status)
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

func (r *Reader) ProductsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	if err := r.ensurePool(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("products by category: %w", err)
	}
	defer rows.Close()
	out := []domain.CategoryCount{}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Reader) DailySales(ctx context.Context, since time.Time) ([]domain.DailySales, error) {
	if err := r.ensurePool(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(total), 0)::text,
		       COUNT(*)
		FROM orders
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()
	out := []domain.DailySales{}
	for rows.Next() {
		var (
			d       domain.DailySales
			revenue string
		)
		if err := rows.Scan(&d.Date, &revenue, &d.Orders); err != nil {
			return nil, err
		}
		if d.Revenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Reader) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if err := r.ensurePool(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT i.product_name, SUM(i.quantity)::bigint AS sold
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status <> $1
		GROUP BY i.product_name
		ORDER BY sold DESC, i.product_name
		LIMIT $2`, string(ordersdomain.StatusCancelled), limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	out := []domain.TopProduct{}
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.Name, &p.Quantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Reader) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	if err := r.ensurePool(); err != nil {
		return decimal.Zero, err
	}
	var raw string
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0)::text FROM orders`).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("total revenue: %w", err)
	}
	return decimal.NewFromString(raw)
}

func (r *Reader) count(ctx context.Context, query string) (int64, error) {
	if err := r.ensurePool(); err != nil {
		return 0, err
	}
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Reader) ensurePool() error {
	if r == nil || r.pool == nil {
		return errors.New("postgres reporting reader not configured")
	}
	return nil
}
