package ports

import (
	"context"
	"errors"

	"github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by token.
type Store interface {
	Load(ctx context.Context, token string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes sessions whose expiry has passed and reports how many.
	PurgeExpired(ctx context.Context) (int64, error)
}
