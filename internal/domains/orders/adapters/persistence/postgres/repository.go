package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// idempotencyIndex is the unique index closing the race between concurrent retries.
const idempotencyIndex = "idx_orders_idempotency_key"

// orderCounterName keys the single row of order_number_counters used for order numbers.
const orderCounterName = "orders"

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&counterRecord{}, &orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type counterRecord struct {
	Name  string `gorm:"primaryKey;column:name;size:64"`
	Value int64  `gorm:"column:value;not null"`
}

func (counterRecord) TableName() string { return "order_number_counters" }

// orderRecord maps the order aggregate to the orders table.
type orderRecord struct {
	ID              int64             `gorm:"primaryKey;column:id"`
	OrderNumber     string            `gorm:"column:order_number;size:20;not null;uniqueIndex"`
	UserID          *int64            `gorm:"column:user_id;index"`
	CustomerName    string            `gorm:"column:customer_name;size:100;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone;size:20;not null"`
	CustomerEmail   string            `gorm:"column:customer_email;size:120;not null;index"`
	CustomerAddress string            `gorm:"column:customer_address;type:text;not null"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status          string            `gorm:"column:status;type:varchar(20);not null;index"`
	PaymentMethod   string            `gorm:"column:payment_method;size:50;not null"`
	Notes           string            `gorm:"column:notes;type:text"`
	IdempotencyKey  *string           `gorm:"column:idempotency_key;size:255;uniqueIndex:idx_orders_idempotency_key"`
	RequestHash     string            `gorm:"column:request_hash;size:64"`
	Items           []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;index"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord holds one purchase-time snapshot. product_id carries no foreign
// key so admin product deletes leave history intact.
type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	Position    int             `gorm:"column:position;not null"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	ProductName string          `gorm:"column:product_name;size:200;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Place runs number allocation, stock decrement and the insert in one transaction.
// The counter row stays locked until commit, so numbers are gapless and strictly increasing.
func (r *Repository) Place(ctx context.Context, order *domain.Order, opts ports.PlaceOptions) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}
		changes := make([]catalogports.StockChange, 0, len(order.Items))
		for _, item := range order.Items {
			changes = append(changes, catalogports.StockChange{ProductID: item.ProductID, Quantity: float64(item.Quantity)})
		}
		if err := catalogpostgres.DecrementStockTx(tx, changes, opts.AllowBackorders); err != nil {
			return err
		}
		record.OrderNumber = domain.FormatOrderNumber(seq)
		return tx.Create(&record).Error
	})
	if err != nil {
		// TranslateError collapses pgx errors into gorm.ErrDuplicatedKey and drops the
		// constraint name; order_number cannot collide, so any unique failure is the key.
		if platformpostgres.IsUniqueViolation(err, idempotencyIndex) ||
			(record.IdempotencyKey != nil && platformpostgres.IsUniqueViolation(err, "")) {
			return nil, ports.ErrDuplicateIdempotencyKey
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func nextOrderNumber(tx *gorm.DB) (int64, error) {
	var value int64
	err := tx.Raw(
		`INSERT INTO order_number_counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = order_number_counters.value + 1
		 RETURNING value`,
		orderCounterName,
	).Scan(&value).Error
	return value, err
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.first(ctx, "order_number = ?", orderNumber)
}

func (r *Repository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	return r.first(ctx, "idempotency_key = ?", key)
}

func (r *Repository) first(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.withItems(r.db.WithContext(ctx)).Where(query, args...).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns orders newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.withItems(r.db.WithContext(ctx)).Model(&orderRecord{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if email := strings.TrimSpace(filter.CustomerEmail); email != "" {
		query = query.Where("LOWER(customer_email) = LOWER(?)", email)
	}
	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// UpdateStatus writes status and notes; the items stay untouched.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status, notes string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"notes":      notes,
		"updated_at": gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.Customer.UserID,
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.Phone,
		CustomerEmail:   order.Customer.Email,
		CustomerAddress: order.Customer.Address,
		Subtotal:        order.Subtotal,
		Total:           order.Total,
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		RequestHash:     order.RequestHash,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if key := strings.TrimSpace(order.IdempotencyKey); key != "" {
		record.IdempotencyKey = &key
	}
	record.Items = make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		record.Items = append(record.Items, orderItemRecord{
			ID:          item.ID,
			Position:    i,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		Customer: domain.Customer{
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Email:   r.CustomerEmail,
			Address: r.CustomerAddress,
			UserID:  r.UserID,
		},
		Subtotal:      r.Subtotal,
		Total:         r.Total,
		Status:        domain.Status(r.Status),
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		RequestHash:   r.RequestHash,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.IdempotencyKey != nil {
		order.IdempotencyKey = *r.IdempotencyKey
	}
	order.Items = make([]domain.Item, 0, len(r.Items))
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.Item{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return order
}
