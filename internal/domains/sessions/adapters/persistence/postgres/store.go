package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
)

var _ ports.Store = (*Store)(nil)

// Store persists sessions in PostgreSQL. Cart lines and notices are JSON columns.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	store := &Store{db: db, now: time.Now}
	if db != nil {
		_ = db.AutoMigrate(&sessionRecord{})
	}
	return store
}

type sessionRecord struct {
	Token         string            `gorm:"primaryKey;column:token;size:64"`
	CustomerID    int64             `gorm:"column:customer_id;index"`
	CustomerEmail string            `gorm:"column:customer_email;size:120"`
	CustomerName  string            `gorm:"column:customer_name;size:100"`
	AdminID       int64             `gorm:"column:admin_id"`
	AdminEmail    string            `gorm:"column:admin_email;size:120"`
	AdminLoggedIn bool              `gorm:"column:admin_logged_in;not null;default:false"`
	CartLines     []cartdomain.Line `gorm:"column:cart_lines;type:jsonb;serializer:json"`
	Notices       []domain.Notice   `gorm:"column:notices;type:jsonb;serializer:json"`
	ExpiresAt     time.Time         `gorm:"column:expires_at;not null;index"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "sessions" }

func (s *Store) Load(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	var record sessionRecord
	if err := s.db.WithContext(ctx).First(&record, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save upserts a session keyed by token.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return errors.New("session token is required")
	}
	record := toRecord(session)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_id", "customer_email", "customer_name",
				"admin_id", "admin_email", "admin_logged_in",
				"cart_lines", "notices", "expires_at", "updated_at",
			}),
		}).
		Create(&record).Error
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "token = ?", token).Error
}

// PurgeExpired removes all expired sessions. Use for housekeeping or cron.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

func toRecord(session *domain.Session) sessionRecord {
	lines := session.Cart.Lines
	if lines == nil {
		lines = []cartdomain.Line{}
	}
	notices := session.Notices
	if notices == nil {
		notices = []domain.Notice{}
	}
	return sessionRecord{
		Token:         session.Token,
		CustomerID:    session.CustomerID,
		CustomerEmail: session.CustomerEmail,
		CustomerName:  session.CustomerName,
		AdminID:       session.AdminID,
		AdminEmail:    session.AdminEmail,
		AdminLoggedIn: session.AdminLoggedIn,
		CartLines:     lines,
		Notices:       notices,
		ExpiresAt:     session.ExpiresAt,
	}
}

func (r sessionRecord) toDomain() *domain.Session {
	var notices []domain.Notice
	if len(r.Notices) > 0 {
		notices = r.Notices
	}
	return &domain.Session{
		Token:         r.Token,
		CustomerID:    r.CustomerID,
		CustomerEmail: r.CustomerEmail,
		CustomerName:  r.CustomerName,
		AdminID:       r.AdminID,
		AdminEmail:    r.AdminEmail,
		AdminLoggedIn: r.AdminLoggedIn,
		Cart:          cartdomain.Cart{Lines: r.CartLines},
		Notices:       notices,
		ExpiresAt:     r.ExpiresAt.UTC(),
	}
}
