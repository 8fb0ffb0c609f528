package ports

import (
	"context"
	"errors"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

var (
	// ErrNotConfigured means no completion credential is set.
	ErrNotConfigured = errors.New("chat completion API key not configured")
	// ErrUpstream wraps failed or malformed completion responses.
	ErrUpstream = errors.New("chat completion request failed")
)

// Prompt is one system instruction plus the shopper's message.
type Prompt struct {
	System string
	User   string
}

// Completer forwards a prompt to a language model and returns its reply text.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ProductSource lists the active catalog.
type ProductSource interface {
	ListActive(ctx context.Context) ([]*catalogdomain.Product, error)
}

// Service answers shopper questions with catalog-aware recommendations.
type Service interface {
	Advise(ctx context.Context, message string) (string, error)
}
