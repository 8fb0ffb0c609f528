package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	storefrontserver "github.com/Apurer/henri-storefront/go"
	"github.com/Apurer/henri-storefront/internal/app/seed"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/http/cookie"
	sessionsapp "github.com/Apurer/henri-storefront/internal/domains/sessions/application"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
)

const (
	serviceName     = "henri-storefront-api"
	shutdownTimeout = 20 * time.Second
)

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	if err := LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.UsesDefaultSecret() {
		logger.Warn("SECRET_KEY not set, signing session cookies with the built-in development key")
	}

	repos, cleanupRepos, err := BuildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepos()
	services, err := BuildServices(cfg, repos, instruments)
	if err != nil {
		return err
	}

	if cfg.SeedOnStart {
		if _, err := seed.New(repos.Products, services.Users, seed.WithLogger(logger)).Run(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	orderWorkflows, closeWorkflows := NewOrderWorkflows(cfg, repos, services.Orders, instruments)
	defer closeWorkflows()

	handlers := storefrontserver.ApiHandleFunctions{
		HealthAPI:   storefrontserver.NewHealthAPI(),
		CatalogAPI:  storefrontserver.NewCatalogAPI(services.Catalog, services.Ratings),
		CartAPI:     storefrontserver.NewCartAPI(services.Carts),
		CheckoutAPI: storefrontserver.NewCheckoutAPI(services.Carts, services.Orders, orderWorkflows),
		AccountAPI:  storefrontserver.NewAccountAPI(services.Users),
		ChatAPI:     storefrontserver.NewChatAPI(services.Advisor),
		AdminAPI:    storefrontserver.NewAdminAPI(services.Users, services.Orders, services.Catalog, services.Ratings, services.Reporting),
	}
	sessions := storefrontserver.NewSessionMiddleware(
		services.Sessions,
		cookie.NewCodec(cfg.SecretKey),
		storefrontserver.WithSecureCookie(cfg.SessionCookieSecure),
		storefrontserver.WithSessionLogger(logger),
	)
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{
		Sessions:   sessions,
		Middleware: httpMiddleware(cfg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("storefront API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storefront API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("storefront API shutting down")
		return srv.Shutdown(drainCtx)
	})
	if cfg.SessionPurgeIntervalMinute > 0 {
		interval := time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute
		group.Go(func() error {
			PurgeSessionsEvery(groupCtx, services.Sessions, interval, logger)
			return nil
		})
	}
	return group.Wait()
}

func httpMiddleware(cfg Config) []gin.HandlerFunc {
	middleware := []gin.HandlerFunc{otelgin.Middleware(serviceName)}
	if len(cfg.CORSAllowedOrigins) > 0 {
		middleware = append(middleware, cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", storefrontserver.IdempotencyKeyHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	return middleware
}

// PurgeSessionsEvery deletes expired sessions on each tick until ctx is done.
func PurgeSessionsEvery(ctx context.Context, manager *sessionsapp.Manager, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := manager.PurgeExpired(ctx)
			if err != nil {
				logger.Error("session purge failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("session purge completed", slog.Int64("removed", removed))
		}
	}
}
