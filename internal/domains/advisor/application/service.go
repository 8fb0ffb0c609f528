package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
)

// ErrEmptyMessage rejects blank chat input before any outbound call.
var ErrEmptyMessage = errors.New("no message provided")

// DefaultStoreName appears in the system prompt.
const DefaultStoreName = "Henri Store"

// Service builds the catalog prompt and forwards the message.
type Service struct {
	products  ports.ProductSource
	completer ports.Completer
	storeName string
}

type Option func(*Service)

func WithStoreName(name string) Option {
	return func(s *Service) {
		if name = strings.TrimSpace(name); name != "" {
			s.storeName = name
		}
	}
}

// NewService wires the advisor. A nil completer makes every call fail with
// ports.ErrNotConfigured.
func NewService(products ports.ProductSource, completer ports.Completer, opts ...Option) *Service {
	s := &Service{products: products, completer: completer, storeName: DefaultStoreName}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Advise(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if s.completer == nil {
		return "", ports.ErrNotConfigured
	}
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return "", err
	}
	return s.completer.Complete(ctx, ports.Prompt{
		System: BuildSystemPrompt(s.storeName, products),
		User:   message,
	})
}

var _ ports.Service = (*Service)(nil)
