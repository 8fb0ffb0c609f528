package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/henri-storefront/internal/app/api"
	sessionspostgres "github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := api.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, os.Getenv("LOG_FORMAT"), platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	removed, err := sessionspostgres.NewStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("removed", removed))
}
