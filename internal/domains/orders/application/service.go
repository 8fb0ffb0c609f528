package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/henri-storefront/internal/domains/cart/ports"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

// StatusAll disables the status filter on admin listings.
const StatusAll = "all"

// Service places and manages orders.
type Service struct {
	repo            ports.Repository
	carts           cartports.Service
	allowBackorders bool
}

type Option func(*Service)

// WithBackorders lets placement take stock below zero.
func WithBackorders(allow bool) Option {
	return func(s *Service) {
		s.allowBackorders = allow
	}
}

func NewService(repo ports.Repository, carts cartports.Service, opts ...Option) *Service {
	s := &Service{repo: repo, carts: carts}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder converts the cart lines into a persisted order. With an idempotency
// key, a repeated request replays the stored order instead of placing another.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" {
		hash, err := FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		existing, err := s.replay(ctx, key, requestHash)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	summary, err := s.carts.Snapshot(ctx, cartdomain.Cart{Lines: input.Lines})
	if err != nil {
		return nil, err
	}
	if summary.IsEmpty() {
		return nil, ErrEmptyCart
	}
	items := make([]domain.Item, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		item, err := domain.NewItem(line.Product.ID, line.Product.Name, line.Quantity, line.Product.SalePrice)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}

	order, err := domain.NewOrder(input.Customer, input.PaymentMethod, input.Notes, items)
	if err != nil {
		return nil, mapError(err)
	}
	order.IdempotencyKey = key
	order.RequestHash = requestHash

	placed, err := s.repo.Place(ctx, order, ports.PlaceOptions{AllowBackorders: s.allowBackorders})
	if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
		// A concurrent request with the same key won the insert.
		existing, replayErr := s.replay(ctx, key, requestHash)
		if replayErr != nil {
			return nil, replayErr
		}
		if existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *Service) replay(ctx context.Context, key, requestHash string) (*domain.Order, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, fmt.Errorf("%w: key already used for order %s", ports.ErrIdempotencyConflict, existing.OrderNumber)
	}
	return existing, nil
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
}

// ListForCustomer returns orders placed with the given email, newest first.
func (s *Service) ListForCustomer(ctx context.Context, email string) ([]*domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrMissingEmail)
	}
	return s.repo.List(ctx, ports.ListFilter{CustomerEmail: email})
}

// List returns every order newest first, optionally narrowed to one status.
func (s *Service) List(ctx context.Context, status string) ([]*domain.Order, error) {
	filter := ports.ListFilter{}
	if raw := strings.TrimSpace(status); raw != "" && !strings.EqualFold(raw, StatusAll) {
		parsed, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, mapError(err)
		}
		filter.Status = parsed
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus validates the status before writing status and notes together.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, notes string) (*domain.Order, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdateStatus(ctx, id, parsed, strings.TrimSpace(notes))
}

var _ ports.Service = (*Service)(nil)
