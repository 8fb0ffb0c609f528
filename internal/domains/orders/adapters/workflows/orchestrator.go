package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/henri-storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/henri-storefront/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// DefaultPlacementTimeout bounds one placement when no timeout is configured.
const DefaultPlacementTimeout = time.Minute

// TemporalOrderWorkflows starts order placement workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

// TemporalOption customizes TemporalOrderWorkflows.
type TemporalOption func(*TemporalOrderWorkflows)

// WithPlacementTimeout caps both the workflow execution and the wait for its
// result. Non-positive values keep the default.
func WithPlacementTimeout(timeout time.Duration) TemporalOption {
	return func(o *TemporalOrderWorkflows) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client, opts ...TemporalOption) *TemporalOrderWorkflows {
	o := &TemporalOrderWorkflows{
		client:    c,
		taskQueue: orderworkflows.PlacementTaskQueue,
		timeout:   DefaultPlacementTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// PlaceOrder starts the placement workflow and waits for its result, at most
// the placement timeout. A key is generated when the client sent none so
// activity retries replay instead of placing a second order.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		input.IdempotencyKey = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	workflowID := buildPlacementWorkflowID(input.IdempotencyKey)
	options := client.StartWorkflowOptions{
		ID:                       workflowID,
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.timeout,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.PlacementWorkflow,
		orderworkflows.PlacementWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("order placement %s: %w", workflowID, ctx.Err())
		}
		return nil, orderactivities.DecodeError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

func buildPlacementWorkflowID(key string) string {
	return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(strings.TrimSpace(key)))
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return spanCtx.TraceID().String()
}
