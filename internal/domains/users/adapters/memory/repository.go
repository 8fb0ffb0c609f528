package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
	"github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store with an email index.
type Repository struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, byEmail: map[string]int64{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	clone.Email = domain.NormalizeEmail(clone.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[clone.Email]; taken {
		return nil, ports.ErrDuplicateEmail
	}
	r.nextID++
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = r.now().UTC()
	}
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	clone.Email = domain.NormalizeEmail(clone.Email)
	if id, taken := r.byEmail[clone.Email]; taken && id != clone.ID {
		return nil, ports.ErrDuplicateEmail
	}
	delete(r.byEmail, existing.Email)
	clone.CreatedAt = existing.CreatedAt
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *Repository) ListCustomers(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		if user.IsAdmin {
			continue
		}
		clone := *user
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
