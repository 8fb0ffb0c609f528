package api

import (
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersworkflows "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
)

// ErrTemporalDisabled is returned by ConnectTemporal when TEMPORAL_DISABLED is set.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// ConnectTemporal dials the cluster with the tracing interceptor and the
// process logger installed.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, ErrTemporalDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// NewOrderWorkflows picks the checkout orchestrator. Temporal is used only when
// Postgres backs the repositories, since the worker places orders against its
// own repositories. The returned func closes the Temporal client, if any.
func NewOrderWorkflows(cfg Config, repos Repositories, orders ordersports.Service, instruments *platformobservability.Instruments) (ordersports.WorkflowOrchestrator, func()) {
	inline := ordersworkflows.NewInlineOrderWorkflows(orders)
	logger := instruments.Logger
	if !repos.PostgresReady {
		if !cfg.TemporalDisabled {
			logger.Warn("Temporal workflows need POSTGRES_DSN, placing orders inline")
		}
		return inline, func() {}
	}
	temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled",
		slog.String("namespace", cfg.TemporalNamespace),
		slog.Duration("placementTimeout", cfg.TemporalPlacementTimeout),
	)
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient, ordersworkflows.WithPlacementTimeout(cfg.TemporalPlacementTimeout)), temporalClient.Close
}
