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

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) ListActive(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListActive")
	defer span.End()

	result, err := s.inner.ListActive(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListByCategory", trace.WithAttributes(attribute.String("product.category", category)))
	defer span.End()

	result, err := s.inner.ListByCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products by category", slog.String("product.category", category))
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) Search(ctx context.Context, term string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("search.term", term)))
	defer span.End()

	s.logInfo(ctx, "searching products", slog.String("search.term", term))
	result, err := s.inner.Search(ctx, term)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("search.term", term))
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) RelatedTo(ctx context.Context, product *catalogdomain.Product, limit int) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RelatedTo", trace.WithAttributes(attribute.Int("related.limit", limit)))
	defer span.End()

	result, err := s.inner.RelatedTo(ctx, product, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list related products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	result, err := s.inner.Categories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	return result, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListAll")
	defer span.End()

	result, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list all products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input catalogports.ProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Create", trace.WithAttributes(attribute.String("product.name", input.Name)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name), slog.String("product.category", input.Category))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	s.metrics.recordCreated(ctx, result.Category)
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, input catalogports.ProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.Int64("product.id", id))
	result, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", id))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "product updated", slog.Int64("product.id", id), slog.Bool("product.active", result.IsActive))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
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
	productsCreated metric.Int64Counter
	productsUpdated metric.Int64Counter
	productsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
	updated, _ := m.Int64Counter("catalog.service.products_updated", metric.WithDescription("Number of products updated"))
	deleted, _ := m.Int64Counter("catalog.service.products_deleted", metric.WithDescription("Number of products deleted"))
	return serviceMetrics{productsCreated: created, productsUpdated: updated, productsDeleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context, category string) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("product.category", category)))
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.productsUpdated != nil {
		m.productsUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.productsDeleted != nil {
		m.productsDeleted.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
