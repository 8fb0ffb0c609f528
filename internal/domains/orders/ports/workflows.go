package ports

import (
	"context"

	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement, durably when a workflow engine is configured.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
