package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps orders in memory. Placement holds the write lock across the
// stock decrement, number allocation and insert.
type Repository struct {
	mu         sync.RWMutex
	stock      catalogports.StockLedger
	orders     map[int64]*domain.Order
	byKey      map[string]int64
	nextID     int64
	nextItemID int64
	sequence   int64
	now        func() time.Time
}

func NewRepository(stock catalogports.StockLedger) *Repository {
	return &Repository{
		stock:  stock,
		orders: map[int64]*domain.Order{},
		byKey:  map[string]int64{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Place(ctx context.Context, order *domain.Order, opts ports.PlaceOptions) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if r.stock == nil {
		return nil, errors.New("stock ledger not configured")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.IdempotencyKey != "" {
		if _, taken := r.byKey[order.IdempotencyKey]; taken {
			return nil, ports.ErrDuplicateIdempotencyKey
		}
	}
	changes := make([]catalogports.StockChange, 0, len(order.Items))
	for _, item := range order.Items {
		changes = append(changes, catalogports.StockChange{ProductID: item.ProductID, Quantity: float64(item.Quantity)})
	}
	if err := r.stock.DecrementStock(ctx, changes, opts.AllowBackorders); err != nil {
		return nil, err
	}

	clone := order.Clone()
	r.sequence++
	r.nextID++
	clone.ID = r.nextID
	clone.OrderNumber = domain.FormatOrderNumber(r.sequence)
	for i := range clone.Items {
		r.nextItemID++
		clone.Items[i].ID = r.nextItemID
	}
	now := r.now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = clone
	if clone.IdempotencyKey != "" {
		r.byKey[clone.IdempotencyKey] = clone.ID
	}
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) GetByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) FindByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.orders[id].Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.CustomerEmail != "" && !strings.EqualFold(order.Customer.Email, filter.CustomerEmail) {
			continue
		}
		list = append(list, order.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.Status, notes string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.UpdateStatus(status, notes); err != nil {
		return nil, err
	}
	order.UpdatedAt = r.now().UTC()
	return order.Clone(), nil
}

// Reset drops every order and restarts numbering.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = map[int64]*domain.Order{}
	r.byKey = map[string]int64{}
	r.nextID, r.nextItemID, r.sequence = 0, 0, 0
}
