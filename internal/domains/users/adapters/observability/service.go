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

	userdomain "github.com/Apurer/henri-storefront/internal/domains/users/domain"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/henri-storefront/internal/domains/users/adapters/observability/service"

// Service decorates the account service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core account service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	span.SetAttributes(attribute.Int64("user.id", result.ID))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.Int64("user.id", result.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	user, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, "customer", false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	s.metrics.recordLogin(ctx, "customer", true)
	return user, nil
}

func (s *Service) AdminLogin(ctx context.Context, email, password string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.AdminLogin")
	defer span.End()
	user, err := s.inner.AdminLogin(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, "admin", false)
		return nil, s.handleError(ctx, span, err, "admin login failed")
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	s.metrics.recordLogin(ctx, "admin", true)
	s.logInfo(ctx, "admin logged in", slog.Int64("user.id", user.ID))
	return user, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListCustomers")
	defer span.End()
	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("user.count", len(result)))
	return result, nil
}

func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.EnsureAdmin")
	defer span.End()
	result, err := s.inner.EnsureAdmin(ctx, email, password, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to ensure admin")
	}
	s.logInfo(ctx, "admin account ready", slog.Int64("user.id", result.ID))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	registered metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of accounts registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{registered: registered, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, kind string, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("login.kind", kind), attribute.Bool("login.success", ok)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
