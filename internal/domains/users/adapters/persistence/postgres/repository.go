package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
	"github.com/Apurer/henri-storefront/internal/domains/users/ports"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

const emailIndex = "idx_users_email"

// Repository persists accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return repo
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;size:120;not null;uniqueIndex:idx_users_email"`
	Name      string    `gorm:"column:name;size:100;not null"`
	Phone     string    `gorm:"column:phone;size:20"`
	Address   string    `gorm:"column:address;type:text"`
	Password  string    `gorm:"column:password_hash;size:200;not null"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts an account; a taken email maps to ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if platformpostgres.IsUniqueViolation(err, emailIndex) || platformpostgres.IsUniqueViolation(err, "") {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":         record.Email,
		"name":          record.Name,
		"phone":         record.Phone,
		"address":       record.Address,
		"password_hash": record.Password,
		"is_admin":      record.IsAdmin,
		"updated_at":    gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		if platformpostgres.IsUniqueViolation(result.Error, "") {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail matches the normalized address.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (r *Repository) ListCustomers(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("created_at DESC").Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:        user.ID,
		Email:     domain.NormalizeEmail(user.Email),
		Name:      user.Name,
		Phone:     user.Phone,
		Address:   user.Address,
		Password:  user.PasswordHash,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Phone:        r.Phone,
		Address:      r.Address,
		PasswordHash: r.Password,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
