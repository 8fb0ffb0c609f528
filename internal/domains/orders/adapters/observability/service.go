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

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder",
		trace.WithAttributes(attribute.Int("order.lines", len(input.Lines)), attribute.Bool("order.idempotent", input.IdempotencyKey != "")))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int("order.lines", len(input.Lines)), slog.Bool("order.idempotent", input.IdempotencyKey != ""))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int("order.lines", len(input.Lines)))
	}
	s.metrics.recordPlaced(ctx, result.PaymentMethod)
	span.SetAttributes(attribute.String("order.number", result.OrderNumber))
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID),
		slog.String("order.number", result.OrderNumber),
		slog.String("order.total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetByNumber", trace.WithAttributes(attribute.String("order.number", orderNumber)))
	defer span.End()

	result, err := s.inner.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.number", orderNumber))
	}
	return result, nil
}

func (s *Service) ListForCustomer(ctx context.Context, email string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListForCustomer")
	defer span.End()

	result, err := s.inner.ListForCustomer(ctx, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) List(ctx context.Context, status string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.List", trace.WithAttributes(attribute.String("order.status", status)))
	defer span.End()

	result, err := s.inner.List(ctx, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("order.status", status))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, notes string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.Int64("order.id", id), slog.String("order.status", status))
	result, err := s.inner.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", id))
	}
	s.metrics.recordStatusChange(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.Int64("order.id", id), slog.String("order.status", string(result.Status)))
	return result, nil
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
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	statusChanges  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	rejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of checkouts that failed"))
	changes, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of admin status changes"))
	return serviceMetrics{ordersPlaced: placed, ordersRejected: rejected, statusChanges: changes}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, paymentMethod string) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_method", paymentMethod)))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status ordersdomain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
