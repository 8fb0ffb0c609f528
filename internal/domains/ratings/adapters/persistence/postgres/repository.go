package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists ratings in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&ratingRecord{})
	}
	return repo
}

// ratingRecord maps a review to the ratings table.
type ratingRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	ProductID    int64     `gorm:"column:product_id;not null;index:idx_ratings_product_approved,priority:1"`
	CustomerName string    `gorm:"column:customer_name;size:100;not null"`
	Rating       int       `gorm:"column:rating;not null;check:rating_range,rating BETWEEN 1 AND 5"`
	Review       string    `gorm:"column:review;type:text"`
	IsApproved   bool      `gorm:"column:is_approved;not null;default:false;index:idx_ratings_product_approved,priority:2"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (ratingRecord) TableName() string { return "ratings" }

func (r *Repository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, errors.New("rating is nil")
	}
	record := toRecord(rating)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Update writes the moderated columns, including is_approved=false.
func (r *Repository) Update(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, errors.New("rating is nil")
	}
	result := r.db.WithContext(ctx).Model(&ratingRecord{}).Where("id = ?", rating.ID).Updates(map[string]any{
		"customer_name": rating.CustomerName,
		"rating":        rating.Rating,
		"review":        rating.Review,
		"is_approved":   rating.IsApproved,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, rating.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ratingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&ratingRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DeleteByProduct removes every rating of a product.
func (r *Repository) DeleteByProduct(ctx context.Context, productID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&ratingRecord{}).Error
}

// List returns ratings newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Rating, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&ratingRecord{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.ApprovedOnly {
		query = query.Where("is_approved = ?", true)
	}
	var records []ratingRecord
	if err := query.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	ratings := make([]*domain.Rating, 0, len(records))
	for i := range records {
		ratings = append(ratings, records[i].toDomain())
	}
	return ratings, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres rating repository not configured")
	}
	return nil
}

func toRecord(rating *domain.Rating) ratingRecord {
	return ratingRecord{
		ID:           rating.ID,
		ProductID:    rating.ProductID,
		CustomerName: rating.CustomerName,
		Rating:       rating.Rating,
		Review:       rating.Review,
		IsApproved:   rating.IsApproved,
		CreatedAt:    rating.CreatedAt,
	}
}

func (r ratingRecord) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:           r.ID,
		ProductID:    r.ProductID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Review:       r.Review,
		IsApproved:   r.IsApproved,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
