package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

var (
	_ ports.Repository  = (*Repository)(nil)
	_ ports.StockLedger = (*Repository)(nil)
)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to the products table.
type productRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;size:200;not null;index"`
	Category      string          `gorm:"column:category;size:100;not null;index"`
	CurrentStock  float64         `gorm:"column:current_stock;not null;default:0"`
	MinimumStock  float64         `gorm:"column:minimum_stock;not null;default:0"`
	SalePrice     decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:numeric(12,2);not null;default:0"`
	DemoPrice     decimal.Decimal `gorm:"column:demo_price;type:numeric(12,2);not null;default:0"`
	Description   string          `gorm:"column:description;type:text"`
	ImageURL      string          `gorm:"column:image_url;size:500"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Update overwrites the mutable product columns; is_active=false must be written explicitly.
func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", product.ID).Updates(map[string]any{
		"name":           record.Name,
		"category":       record.Category,
		"current_stock":  record.CurrentStock,
		"minimum_stock":  record.MinimumStock,
		"sale_price":     record.SalePrice,
		"purchase_price": record.PurchasePrice,
		"demo_price":     record.DemoPrice,
		"description":    record.Description,
		"image_url":      record.ImageURL,
		"is_active":      record.IsActive,
		"updated_at":     gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, product.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByName fetches the first product with an exact name.
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Order("id").First(&record, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a product permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List applies the filter in SQL.
func (r *Repository) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if term := strings.TrimSpace(filter.NameTerm); term != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(term)+"%")
	}
	if filter.ExcludeID != 0 {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	if filter.OrderBy == ports.OrderByName {
		query = query.Order("name").Order("id")
	} else {
		query = query.Order("id")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// Categories returns distinct categories of active products.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var categories []string
	if err := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count returns the number of products, active or not.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&productRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock runs the batch in its own transaction.
func (r *Repository) DecrementStock(ctx context.Context, changes []ports.StockChange, allowNegative bool) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return DecrementStockTx(tx, changes, allowNegative)
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		CurrentStock:  product.CurrentStock,
		MinimumStock:  product.MinimumStock,
		SalePrice:     product.SalePrice,
		PurchasePrice: product.PurchasePrice,
		DemoPrice:     product.DemoPrice,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		CurrentStock:  r.CurrentStock,
		MinimumStock:  r.MinimumStock,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
		DemoPrice:     r.DemoPrice,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
	}
}
