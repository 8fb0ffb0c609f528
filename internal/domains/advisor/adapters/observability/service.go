package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/advisor/adapters/observability/service"

// Service decorates the advisor with tracing, logging, and metrics.
type Service struct {
	inner   advisorports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner advisorports.Service, opts ...Option) advisorports.Service {
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

func (s *Service) Advise(ctx context.Context, message string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "AdvisorService.Advise", trace.WithAttributes(attribute.Int("chat.message_length", len(message))))
	defer span.End()

	start := time.Now()
	reply, err := s.inner.Advise(ctx, message)
	s.metrics.record(ctx, time.Since(start), outcome(err))
	if err != nil {
		return "", s.handleError(ctx, span, err, "advisor request failed")
	}
	span.SetAttributes(attribute.Int("chat.reply_length", len(reply)))
	s.logInfo(ctx, "advisor replied", slog.Int("chat.reply_length", len(reply)))
	return reply, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, advisorports.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, advisorports.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	requests, _ := m.Int64Counter("advisor.service.requests", metric.WithDescription("Number of advisor requests by outcome"))
	latency, _ := m.Float64Histogram("advisor.service.duration", metric.WithDescription("Advisor round trip latency"), metric.WithUnit("s"))
	return serviceMetrics{requests: requests, latency: latency}
}

func (m serviceMetrics) record(ctx context.Context, elapsed time.Duration, result string) {
	attrs := metric.WithAttributes(attribute.String("chat.outcome", result))
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.latency != nil {
		m.latency.Record(ctx, elapsed.Seconds(), attrs)
	}
}

var _ advisorports.Service = (*Service)(nil)
