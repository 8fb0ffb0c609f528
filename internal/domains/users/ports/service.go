package ports

import (
	"context"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Phone    string
	Address  string
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	AdminLogin(ctx context.Context, email, password string) (*domain.User, error)
	ListCustomers(ctx context.Context) ([]*domain.User, error)
	// EnsureAdmin creates the admin account or promotes an existing one.
	EnsureAdmin(ctx context.Context, email, password, name string) (*domain.User, error)
}
