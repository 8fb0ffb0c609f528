package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

var (
	_ ports.Repository  = (*Repository)(nil)
	_ ports.StockLedger = (*Repository)(nil)
)

// Repository is an in-memory product store. It doubles as the stock ledger
// for the in-memory order repository.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = r.now().UTC()
	}
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	clone.CreatedAt = existing.CreatedAt
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.sortedIDs() {
		if r.products[id].Name == name {
			clone := *r.products[id]
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, id := range r.sortedIDs() {
		product := r.products[id]
		if filter.ActiveOnly && !product.IsActive {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.NameTerm != "" && !product.MatchesTerm(filter.NameTerm) {
			continue
		}
		if filter.ExcludeID != 0 && product.ID == filter.ExcludeID {
			continue
		}
		clone := *product
		list = append(list, &clone)
	}
	if filter.OrderBy == ports.OrderByName {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *Repository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	categories := []string{}
	for _, id := range r.sortedIDs() {
		product := r.products[id]
		if !product.IsActive {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// DecrementStock validates the whole batch before mutating anything.
func (r *Repository) DecrementStock(_ context.Context, changes []ports.StockChange, allowNegative bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := map[int64]float64{}
	for _, change := range changes {
		product, ok := r.products[change.ProductID]
		if !ok {
			return ports.ErrNotFound
		}
		remaining, seen := pending[change.ProductID]
		if !seen {
			remaining = product.CurrentStock
		}
		remaining -= change.Quantity
		if remaining < 0 && !allowNegative {
			return fmt.Errorf("%w: product %d", ports.ErrInsufficientStock, change.ProductID)
		}
		pending[change.ProductID] = remaining
	}
	for id, stock := range pending {
		r.products[id].CurrentStock = stock
	}
	return nil
}

// sortedIDs must be called with the lock held.
func (r *Repository) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reset drops every product. Used by contract tests between provider states.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int64]*domain.Product{}
	r.nextID = 0
}
