package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
)

// Run applies the storefront schema. Repositories also AutoMigrate their own
// tables; this is the single entry point for storectl and the tests.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&productRecord{},
		&counterRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
		&sessionRecord{},
		&ratingRecord{},
	); err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&counterRecord{Name: "orders", Value: 0}).Error
}

// Product schema mirrors the catalog Postgres adapter.
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

// Order number allocation row, locked inside the placement transaction.
type counterRecord struct {
	Name  string `gorm:"primaryKey;column:name;size:64"`
	Value int64  `gorm:"column:value;not null"`
}

func (counterRecord) TableName() string { return "order_number_counters" }

// Order schema mirrors the orders Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
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

// Session schema mirrors the session store.
type sessionRecord struct {
	Token         string                 `gorm:"primaryKey;column:token;size:64"`
	CustomerID    int64                  `gorm:"column:customer_id;index"`
	CustomerEmail string                 `gorm:"column:customer_email;size:120"`
	CustomerName  string                 `gorm:"column:customer_name;size:100"`
	AdminID       int64                  `gorm:"column:admin_id"`
	AdminEmail    string                 `gorm:"column:admin_email;size:120"`
	AdminLoggedIn bool                   `gorm:"column:admin_logged_in;not null;default:false"`
	CartLines     []cartdomain.Line      `gorm:"column:cart_lines;type:jsonb;serializer:json"`
	Notices       []sessiondomain.Notice `gorm:"column:notices;type:jsonb;serializer:json"`
	ExpiresAt     time.Time              `gorm:"column:expires_at;not null;index"`
	CreatedAt     time.Time              `gorm:"column:created_at"`
	UpdatedAt     time.Time              `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "sessions" }

// Rating schema mirrors the ratings Postgres adapter.
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
