package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/henri-storefront/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the placement activity with retries. The
// idempotency key on the input makes every attempt after a success a replay.
func RunOrderPlacementSequence(ctx workflow.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "lines", len(input.Lines))
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrorTypeInvalidInput,
				orderactivities.ErrorTypeEmptyCart,
				orderactivities.ErrorTypeInsufficientStock,
				orderactivities.ErrorTypeIdempotencyConflict,
			},
		},
	}

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order placement sequence placed", "orderNumber", order.OrderNumber)
	return &order, nil
}
