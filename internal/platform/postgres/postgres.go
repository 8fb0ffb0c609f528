package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverPGX uses the pgx stdlib driver bundled with the GORM dialector.
	DriverPGX = "pgx"
	// DriverPQ routes GORM through lib/pq registered as "postgres".
	DriverPQ = "pq"
)

// Options tunes how Connect opens the database.
type Options struct {
	Driver       string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     gormlogger.LogLevel
}

// OptionsFromEnv picks the driver from POSTGRES_DRIVER ("pgx" by default, or "pq")
// with fixed pool sizes.
func OptionsFromEnv() Options {
	opts := Options{
		Driver:       strings.ToLower(strings.TrimSpace(os.Getenv("POSTGRES_DRIVER"))),
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		LogLevel:     gormlogger.Warn,
	}
	if opts.Driver == "" {
		opts.Driver = DriverPGX
	}
	return opts
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	return ConnectWithOptions(ctx, dsn, OptionsFromEnv())
}

// ConnectWithOptions is Connect with explicit driver and pool settings.
func ConnectWithOptions(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	cfg := postgres.Config{DSN: dsn}
	switch opts.Driver {
	case "", DriverPGX:
	case DriverPQ:
		cfg.DriverName = "postgres"
	default:
		return nil, fmt.Errorf("unsupported postgres driver %q", opts.Driver)
	}
	db, err := gorm.Open(postgres.New(cfg), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus a cleanup function.
// When POSTGRES_DSN is missing or the connection fails, it logs and returns nil with a no-op cleanup.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	return ConnectDSN(ctx, strings.TrimSpace(os.Getenv("POSTGRES_DSN")), logger)
}

// ConnectDSN behaves like ConnectFromEnv for an already resolved DSN.
func ConnectDSN(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if dsn == "" {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		}
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("postgres connection established", slog.String("driver", OptionsFromEnv().Driver))
	}
	return db, func() { _ = sqlDB.Close() }
}
