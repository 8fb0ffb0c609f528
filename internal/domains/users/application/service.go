package application

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
	"github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

// Service exposes account use cases.
type Service struct {
	repo     ports.Repository
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Email, input.Name, input.Password, s.hashCost)
	if err != nil {
		return nil, mapError(err)
	}
	user.UpdateContact(input.Phone, input.Address)
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, mapError(ports.ErrDuplicateEmail)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// AdminLogin accepts only admin accounts; a customer password match still fails.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	if !user.IsAdmin {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	return user, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	switch {
	case err == nil:
		if existing.IsAdmin {
			return existing, nil
		}
		existing.PromoteToAdmin()
		return s.repo.Update(ctx, existing)
	case !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	admin, err := domain.NewUser(email, name, password, s.hashCost)
	if err != nil {
		return nil, mapError(err)
	}
	admin.PromoteToAdmin()
	return s.repo.Create(ctx, admin)
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ports.ErrInvalidCredentials
	}
	return user, nil
}

var _ ports.Service = (*Service)(nil)
