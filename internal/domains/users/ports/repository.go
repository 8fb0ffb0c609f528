package ports

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists accounts keyed by normalized email.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListCustomers returns non-admin accounts newest first.
	ListCustomers(ctx context.Context) ([]*domain.User, error)
}
