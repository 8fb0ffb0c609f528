package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/henri-storefront/internal/app/api"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
	orderactivities "github.com/Apurer/henri-storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/henri-storefront/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "henri-storefront-worker"
	if err := api.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{ServiceName: serviceName})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos, err := api.BuildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure repositories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupRepos()
	if !repos.PostgresReady {
		logger.Error("worker requires POSTGRES_DSN, the API places orders inline without a shared database")
		os.Exit(1)
	}
	services, err := api.BuildServices(cfg, repos, instruments)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orderActivities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := api.ConnectTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.PlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.PlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.PlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.PlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
