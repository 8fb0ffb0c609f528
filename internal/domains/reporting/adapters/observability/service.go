package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	reportingdomain "github.com/Apurer/henri-storefront/internal/domains/reporting/domain"
	reportingports "github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/observability/service"

// Service decorates admin reporting with tracing, logging, and query latency.
type Service struct {
	inner   reportingports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

func New(inner reportingports.Service, opts ...Option) reportingports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Dashboard(ctx context.Context) (*reportingdomain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.Dashboard")
	defer span.End()

	start := time.Now()
	result, err := s.inner.Dashboard(ctx)
	s.metrics.recordDuration(ctx, "dashboard", time.Since(start))
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard")
	}
	span.SetAttributes(
		attribute.Int64("orders.total", result.TotalOrders),
		attribute.Int64("products.low_stock", result.LowStockProducts),
	)
	return result, nil
}

func (s *Service) Stats(ctx context.Context) (*reportingdomain.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.Stats")
	defer span.End()

	start := time.Now()
	result, err := s.inner.Stats(ctx)
	s.metrics.recordDuration(ctx, "stats", time.Since(start))
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build stats")
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	duration metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	duration, _ := m.Float64Histogram("reporting.service.duration",
		metric.WithDescription("Time spent computing admin reports"),
		metric.WithUnit("ms"))
	return serviceMetrics{duration: duration}
}

func (m serviceMetrics) recordDuration(ctx context.Context, report string, d time.Duration) {
	if m.duration != nil {
		m.duration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributes(attribute.String("report", report)))
	}
}

var _ reportingports.Service = (*Service)(nil)
