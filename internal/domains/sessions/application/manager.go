package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
)

// DefaultTTL applies when none is configured.
const DefaultTTL = 24 * time.Hour

// Manager issues, resumes and persists sessions with a sliding expiry.
type Manager struct {
	store ports.Store
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

type Option func(*Manager)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(store ports.Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Start creates an unsaved session with a fresh token.
func (m *Manager) Start() *domain.Session {
	return domain.New(m.newID(), m.now().Add(m.ttl).UTC())
}

// Resume loads the session for token, starting a new one when the token is
// empty, unknown or expired.
func (m *Manager) Resume(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return m.Start(), nil
	}
	session, err := m.store.Load(ctx, token)
	if errors.Is(err, ports.ErrNotFound) {
		return m.Start(), nil
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return m.Start(), nil
	}
	return session, nil
}

// Renew gives session a fresh token, keeping its contents. The caller saves it
// and destroys the previous token.
func (m *Manager) Renew(session *domain.Session) {
	session.Token = m.newID()
}

// Save extends the expiry and persists the session.
func (m *Manager) Save(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return errors.New("session is nil")
	}
	session.ExpiresAt = m.now().Add(m.ttl).UTC()
	return m.store.Save(ctx, session)
}

func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.store.PurgeExpired(ctx)
}
