package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Apurer/henri-storefront/internal/clients/http/chatcompletion"
	advisorgroq "github.com/Apurer/henri-storefront/internal/domains/advisor/adapters/groq"
	advisorobs "github.com/Apurer/henri-storefront/internal/domains/advisor/adapters/observability"
	advisorapp "github.com/Apurer/henri-storefront/internal/domains/advisor/application"
	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
	cartapp "github.com/Apurer/henri-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/henri-storefront/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/henri-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	ratingsmemory "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/memory"
	ratingsobs "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/observability"
	ratingspostgres "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/persistence/postgres"
	ratingsapp "github.com/Apurer/henri-storefront/internal/domains/ratings/application"
	ratingsports "github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
	reportmemory "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/memory"
	reportobs "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/observability"
	reportpostgres "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/persistence/postgres"
	reportapp "github.com/Apurer/henri-storefront/internal/domains/reporting/application"
	reportports "github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
	sessionsmemory "github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/memory"
	sessionspostgres "github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/persistence/postgres"
	sessionsapp "github.com/Apurer/henri-storefront/internal/domains/sessions/application"
	sessionsports "github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
	usermemory "github.com/Apurer/henri-storefront/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/henri-storefront/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/henri-storefront/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
	"github.com/Apurer/henri-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
)

// Repositories holds one storage adapter per domain, all backed by the same engine.
type Repositories struct {
	Products      catalogports.Repository
	Orders        ordersports.Repository
	Ratings       ratingsports.Repository
	Users         userports.Repository
	Sessions      sessionsports.Store
	Reports       reportports.Reader
	PostgresReady bool
}

// Services is the decorated application layer shared by the API, the worker and storectl.
type Services struct {
	Repositories

	Catalog   catalogports.Service
	Carts     cartports.Service
	Orders    ordersports.Service
	Ratings   ratingsports.Service
	Reporting reportports.Service
	Users     userports.Service
	Advisor   advisorports.Service
	Sessions  *sessionsapp.Manager
}

// BuildRepositories connects to Postgres when POSTGRES_DSN is set, applying
// migrations first, and falls back to in-memory adapters otherwise.
func BuildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func(), error) {
	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return memoryRepositories(), cleanup, nil
	}
	repos, poolCleanup, err := postgresRepositories(ctx, db, cfg.PostgresDSN)
	if err != nil {
		cleanup()
		return Repositories{}, func() {}, err
	}
	logger.Info("repositories configured with postgres")
	return repos, func() {
		poolCleanup()
		cleanup()
	}, nil
}

func memoryRepositories() Repositories {
	products := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository(products)
	return Repositories{
		Products: products,
		Orders:   orders,
		Ratings:  ratingsmemory.NewRepository(),
		Users:    usermemory.NewRepository(),
		Sessions: sessionsmemory.NewStore(),
		Reports:  reportmemory.NewReader(products, orders),
	}
}

func postgresRepositories(ctx context.Context, db *gorm.DB, dsn string) (Repositories, func(), error) {
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		return Repositories{}, nil, fmt.Errorf("apply migrations: %w", err)
	}
	pool, err := platformpostgres.ConnectPool(ctx, dsn)
	if err != nil {
		return Repositories{}, nil, fmt.Errorf("connect reporting pool: %w", err)
	}
	return Repositories{
		Products:      catalogpostgres.NewRepository(db),
		Orders:        orderspostgres.NewRepository(db),
		Ratings:       ratingspostgres.NewRepository(db),
		Users:         userpostgres.NewRepository(db),
		Sessions:      sessionspostgres.NewStore(db),
		Reports:       reportpostgres.NewReader(pool),
		PostgresReady: true,
	}, pool.Close, nil
}

// BuildServices wires every domain service over repos and wraps each in its
// observability decorator.
func BuildServices(cfg Config, repos Repositories, instruments *platformobservability.Instruments) (*Services, error) {
	logger := instruments.Logger

	catalog := catalogobs.New(
		catalogapp.NewService(repos.Products),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	carts := cartapp.NewService(catalog)
	orders := ordersobs.New(
		ordersapp.NewService(repos.Orders, carts, ordersapp.WithBackorders(cfg.AllowBackorders)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	ratings := ratingsobs.New(
		ratingsapp.NewService(repos.Ratings, catalog),
		ratingsobs.WithLogger(logger),
		ratingsobs.WithTracer(instruments.Tracer("internal.ratings.application")),
		ratingsobs.WithMeter(instruments.Meter("internal.ratings.application")),
	)
	reporting := reportobs.New(
		reportapp.NewService(repos.Reports),
		reportobs.WithLogger(logger),
		reportobs.WithTracer(instruments.Tracer("internal.reporting.application")),
		reportobs.WithMeter(instruments.Meter("internal.reporting.application")),
	)
	users := userobs.New(
		userapp.NewService(repos.Users),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	completer, err := buildCompleter(cfg)
	if err != nil {
		return nil, err
	}
	if completer == nil {
		logger.Warn("GROQ_API_KEY not set, chat advisor disabled")
	}
	advisor := advisorobs.New(
		advisorapp.NewService(catalog, completer, advisorapp.WithStoreName(cfg.StoreName)),
		advisorobs.WithLogger(logger),
		advisorobs.WithTracer(instruments.Tracer("internal.advisor.application")),
		advisorobs.WithMeter(instruments.Meter("internal.advisor.application")),
	)

	return &Services{
		Repositories: repos,
		Catalog:      catalog,
		Carts:        carts,
		Orders:       orders,
		Ratings:      ratings,
		Reporting:    reporting,
		Users:        users,
		Advisor:      advisor,
		Sessions:     sessionsapp.NewManager(repos.Sessions, sessionsapp.WithTTL(cfg.SessionTTL)),
	}, nil
}

// buildCompleter returns nil when no API key is configured.
func buildCompleter(cfg Config) (advisorports.Completer, error) {
	if cfg.GroqAPIKey == "" {
		return nil, nil
	}
	client, err := chatcompletion.NewClient(cfg.ChatAPIURL, cfg.GroqAPIKey, chatcompletion.NewHTTPClient(cfg.ChatTimeout))
	if err != nil {
		return nil, fmt.Errorf("configure chat client: %w", err)
	}
	return advisorgroq.NewCompleter(client, advisorgroq.WithModel(cfg.ChatModel)), nil
}
