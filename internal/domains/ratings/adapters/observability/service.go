package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ratingsdomain "github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	ratingsports "github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/observability/service"

// Service decorates the ratings service with tracing, logging, and metrics.
type Service struct {
	inner   ratingsports.Service
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

func New(inner ratingsports.Service, opts ...Option) ratingsports.Service {
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

func (s *Service) Submit(ctx context.Context, input ratingsports.SubmitInput) (*ratingsdomain.Rating, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.Submit", trace.WithAttributes(attribute.Int64("product.id", input.ProductID)))
	defer span.End()

	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit rating", slog.Int64("product.id", input.ProductID))
	}
	span.SetAttributes(attribute.Int64("rating.id", result.ID), attribute.Int("rating.value", result.Rating))
	s.metrics.recordSubmitted(ctx, result.Rating)
	s.logInfo(ctx, "rating submitted", slog.Int64("rating.id", result.ID), slog.Int64("product.id", result.ProductID))
	return result, nil
}

func (s *Service) ListApprovedFor(ctx context.Context, productID int64) (*ratingsports.ProductRatings, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.ListApprovedFor", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	result, err := s.inner.ListApprovedFor(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list approved ratings", slog.Int64("product.id", productID))
	}
	span.SetAttributes(attribute.Int("rating.count", len(result.Ratings)), attribute.Float64("rating.average", result.Average))
	return result, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*ratingsdomain.Rating, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.ListAll")
	defer span.End()

	result, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list ratings")
	}
	span.SetAttributes(attribute.Int("rating.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ratingsdomain.Rating, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.Get", trace.WithAttributes(attribute.Int64("rating.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load rating", slog.Int64("rating.id", id))
	}
	return result, nil
}

func (s *Service) Approve(ctx context.Context, id int64) (*ratingsdomain.Rating, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.Approve", trace.WithAttributes(attribute.Int64("rating.id", id)))
	defer span.End()

	result, err := s.inner.Approve(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to approve rating", slog.Int64("rating.id", id))
	}
	s.metrics.recordModerated(ctx, "approve")
	s.logInfo(ctx, "rating approved", slog.Int64("rating.id", id))
	return result, nil
}

func (s *Service) Edit(ctx context.Context, id int64, input ratingsports.EditInput) (*ratingsdomain.Rating, error) {
	ctx, span := s.tracer.Start(ctx, "RatingsService.Edit", trace.WithAttributes(attribute.Int64("rating.id", id)))
	defer span.End()

	result, err := s.inner.Edit(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit rating", slog.Int64("rating.id", id))
	}
	s.metrics.recordModerated(ctx, "edit")
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "RatingsService.Delete", trace.WithAttributes(attribute.Int64("rating.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete rating", slog.Int64("rating.id", id))
	}
	s.metrics.recordModerated(ctx, "delete")
	s.logInfo(ctx, "rating deleted", slog.Int64("rating.id", id))
	return nil
}

func (s *Service) DeleteForProduct(ctx context.Context, productID int64) error {
	ctx, span := s.tracer.Start(ctx, "RatingsService.DeleteForProduct", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	if err := s.inner.DeleteForProduct(ctx, productID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product ratings", slog.Int64("product.id", productID))
	}
	return nil
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
	submitted metric.Int64Counter
	moderated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("ratings.service.submitted", metric.WithDescription("Number of ratings submitted"))
	moderated, _ := m.Int64Counter("ratings.service.moderated", metric.WithDescription("Number of moderation actions"))
	return serviceMetrics{submitted: submitted, moderated: moderated}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, value int) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1, metric.WithAttributes(attribute.Int("rating.value", value)))
	}
}

func (m serviceMetrics) recordModerated(ctx context.Context, action string) {
	if m.moderated != nil {
		m.moderated.Add(ctx, 1, metric.WithAttributes(attribute.String("moderation.action", action)))
	}
}

var _ ratingsports.Service = (*Service)(nil)
