package application

import (
	"context"
	"time"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
	"github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
)

// Service composes dashboard aggregates from a Reader.
type Service struct {
	reader ports.Reader
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(reader ports.Reader, opts ...Option) *Service {
	s := &Service{reader: reader, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var (
		d   domain.Dashboard
		err error
	)
	if d.TotalOrders, err = s.reader.CountOrders(ctx); err != nil {
		return nil, err
	}
	byStatus, err := s.reader.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	d.OrdersByStatus = domain.CompleteStatusCounts(byStatus)
	d.PendingOrders = byStatus[ordersdomain.StatusPending]
	if d.TotalProducts, err = s.reader.CountProducts(ctx); err != nil {
		return nil, err
	}
	if d.LowStockProducts, err = s.reader.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if d.RecentOrders, err = s.reader.RecentOrders(ctx, domain.RecentOrdersLimit); err != nil {
		return nil, err
	}
	if d.ProductsByCategory, err = s.reader.ProductsByCategory(ctx); err != nil {
		return nil, err
	}
	since := s.now().UTC().Add(-domain.SalesWindow)
	if d.DailySales, err = s.reader.DailySales(ctx, since); err != nil {
		return nil, err
	}
	if d.TopProducts, err = s.reader.TopProducts(ctx, domain.TopProductsLimit); err != nil {
		return nil, err
	}
	if d.TotalRevenue, err = s.reader.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	revenue, err := s.reader.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reader.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Stats{TotalRevenue: revenue, OrdersByStatus: domain.CompleteStatusCounts(byStatus)}, nil
}

var _ ports.Service = (*Service)(nil)
