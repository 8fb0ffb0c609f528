package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	"github.com/Apurer/henri-storefront/internal/platform/temporal/sequences"
)

const (
	// PlacementWorkflowName is the public identifier for registering the workflow.
	PlacementWorkflowName = "orders.workflows.Placement"
	// PlacementTaskQueue is the queue consumed by the worker processing order workflows.
	PlacementTaskQueue = "ORDER_PLACEMENT"
)

// PlacementWorkflowInput captures the checkout command.
type PlacementWorkflowInput struct {
	Command ordersports.PlaceOrderInput
	TraceID string
}

// PlacementWorkflow orchestrates order placement.
func PlacementWorkflow(ctx workflow.Context, input PlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PlacementWorkflow started", withTraceID(input.TraceID, "lines", len(input.Command.Lines))...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("PlacementWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("PlacementWorkflow completed", withTraceID(input.TraceID, "orderNumber", order.OrderNumber)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
