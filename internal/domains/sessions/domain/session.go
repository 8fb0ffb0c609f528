package domain

import (
	"time"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
)

// Notice kinds mirror the flash categories rendered by the storefront.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// MaxNotices bounds the queue for clients that never drain it.
const MaxNotices = 20

// Notice is a one-shot message shown after a redirect or mutation.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the server-side state behind the henri_session cookie.
type Session struct {
	Token string

	CustomerID    int64
	CustomerEmail string
	CustomerName  string

	AdminID       int64
	AdminEmail    string
	AdminLoggedIn bool

	Cart    cartdomain.Cart
	Notices []Notice

	ExpiresAt time.Time
}

// New starts an empty session.
func New(token string, expiresAt time.Time) *Session {
	return &Session{Token: token, ExpiresAt: expiresAt}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AddNotice queues a notice, dropping the oldest beyond MaxNotices.
func (s *Session) AddNotice(kind, message string) {
	s.Notices = append(s.Notices, Notice{Kind: kind, Message: message})
	if overflow := len(s.Notices) - MaxNotices; overflow > 0 {
		s.Notices = append([]Notice(nil), s.Notices[overflow:]...)
	}
}

// DrainNotices returns queued notices and clears the queue.
func (s *Session) DrainNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

func (s *Session) LoginCustomer(id int64, email, name string) {
	s.CustomerID = id
	s.CustomerEmail = email
	s.CustomerName = name
}

// HasCustomer reports whether a customer is logged in.
func (s *Session) HasCustomer() bool { return s.CustomerEmail != "" }

func (s *Session) LoginAdmin(id int64, email string) {
	s.AdminID = id
	s.AdminEmail = email
	s.AdminLoggedIn = true
}

// LogoutAdmin drops only the admin fields.
func (s *Session) LogoutAdmin() {
	s.AdminID = 0
	s.AdminEmail = ""
	s.AdminLoggedIn = false
}

// Clear wipes customer, admin, cart and notices, keeping token and expiry.
func (s *Session) Clear() {
	*s = Session{Token: s.Token, ExpiresAt: s.ExpiresAt}
}
