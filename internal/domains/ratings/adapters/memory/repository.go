package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps ratings in a map guarded by a mutex.
type Repository struct {
	mu      sync.RWMutex
	ratings map[int64]*domain.Rating
	nextID  int64
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{ratings: map[int64]*domain.Rating{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if rating == nil {
		return nil, errors.New("rating is nil")
	}
	clone := *rating
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = r.now().UTC()
	}
	r.ratings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if rating == nil {
		return nil, errors.New("rating is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.ratings[rating.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *rating
	clone.ProductID = existing.ProductID
	clone.CreatedAt = existing.CreatedAt
	r.ratings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rating, ok := r.ratings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *rating
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.ratings, id)
	return nil
}

// DeleteByProduct drops the ratings of a removed product.
func (r *Repository) DeleteByProduct(_ context.Context, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rating := range r.ratings {
		if rating.ProductID == productID {
			delete(r.ratings, id)
		}
	}
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Rating, 0, len(r.ratings))
	for _, rating := range r.ratings {
		if filter.ProductID != 0 && rating.ProductID != filter.ProductID {
			continue
		}
		if filter.ApprovedOnly && !rating.IsApproved {
			continue
		}
		clone := *rating
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

// Reset drops every rating. Used by contract tests between provider states.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings = map[int64]*domain.Rating{}
	r.nextID = 0
}
