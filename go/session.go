package storefrontserver

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/http/cookie"
	sessionsapp "github.com/Apurer/henri-storefront/internal/domains/sessions/application"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	apierrors "github.com/Apurer/henri-storefront/internal/shared/errors"
)

const (
	sessionContextKey = "storefront.session"
	sessionRenewKey   = "storefront.session.renew"
)

// AdminLoginPath is where unauthenticated browsers are sent by the admin gate.
const AdminLoginPath = "/admin/login"

// SessionMiddleware resumes the henri_session cookie, then persists the
// session and sets the cookie before the first byte of the response.
type SessionMiddleware struct {
	manager *sessionsapp.Manager
	codec   *cookie.Codec
	secure  bool
	now     func() time.Time
	logger  *slog.Logger
}

type SessionOption func(*SessionMiddleware)

func WithSecureCookie(secure bool) SessionOption {
	return func(m *SessionMiddleware) { m.secure = secure }
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(m *SessionMiddleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *SessionMiddleware) {
		if now != nil {
			m.now = now
		}
	}
}

func NewSessionMiddleware(manager *sessionsapp.Manager, codec *cookie.Codec, opts ...SessionOption) *SessionMiddleware {
	m := &SessionMiddleware{
		manager: manager,
		codec:   codec,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *SessionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := ""
		if raw, err := c.Cookie(cookie.Name); err == nil && raw != "" {
			decoded, err := m.codec.Decode(raw)
			if err != nil {
				m.logger.DebugContext(ctx, "discarding invalid session cookie", slog.String("error", err.Error()))
			} else {
				token = decoded
			}
		}
		session, err := m.manager.Resume(ctx, token)
		if err != nil {
			m.logger.WarnContext(ctx, "session store unavailable, starting a fresh session", slog.String("error", err.Error()))
			session = m.manager.Start()
		}
		c.Set(sessionContextKey, session)
		c.Set(sessionRenewKey, func() { m.manager.Renew(session) })

		issued := session.Token
		writer := &sessionWriter{ResponseWriter: c.Writer, persist: func() {
			if err := m.manager.Save(ctx, session); err != nil {
				m.logger.ErrorContext(ctx, "failed to persist session", slog.String("error", err.Error()))
			}
			if session.Token != issued && issued != "" {
				if err := m.manager.Destroy(ctx, issued); err != nil {
					m.logger.WarnContext(ctx, "failed to drop renewed session token", slog.String("error", err.Error()))
				}
			}
			if err := m.setCookie(c, session.Token); err != nil {
				m.logger.ErrorContext(ctx, "failed to sign session cookie", slog.String("error", err.Error()))
			}
		}}
		c.Writer = writer
		c.Next()
		writer.commit()
	}
}

func (m *SessionMiddleware) setCookie(c *gin.Context, token string) error {
	ttl := m.manager.TTL()
	value, err := m.codec.Encode(token, m.now().Add(ttl))
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, value, int(ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// sessionWriter saves the session exactly once, ahead of the response body.
type sessionWriter struct {
	gin.ResponseWriter
	once    sync.Once
	persist func()
}

func (w *sessionWriter) commit() { w.once.Do(w.persist) }

func (w *sessionWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(data []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(data)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}

// renewSession moves the request session to a fresh token so a token seen
// before login cannot ride the authenticated session.
func renewSession(c *gin.Context) {
	if value, ok := c.Get(sessionRenewKey); ok {
		if renew, ok := value.(func()); ok {
			renew()
		}
	}
}

// currentSession returns the request session, creating a transient one when
// the middleware is not installed.
func currentSession(c *gin.Context) *sessiondomain.Session {
	if value, ok := c.Get(sessionContextKey); ok {
		if session, ok := value.(*sessiondomain.Session); ok && session != nil {
			return session
		}
	}
	session := sessiondomain.New("", time.Time{})
	c.Set(sessionContextKey, session)
	return session
}

// RequireAdmin redirects browsers to the admin login and answers 401 to API clients.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).AdminLoggedIn {
			c.Next()
			return
		}
		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, AdminLoginPath)
			c.Abort()
			return
		}
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("admin login required"))
		c.Abort()
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
