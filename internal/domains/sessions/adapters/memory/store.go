package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory session store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: map[string]*domain.Session{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Store) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) Load(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(session), nil
}

func (s *Store) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = clone(session)
	return nil
}

func (s *Store) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Store) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var purged int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}

func clone(session *domain.Session) *domain.Session {
	out := *session
	out.Cart = cartdomain.Cart{Lines: append([]cartdomain.Line(nil), session.Cart.Lines...)}
	out.Notices = append([]domain.Notice(nil), session.Notices...)
	return &out
}
