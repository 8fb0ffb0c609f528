package orders

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the atomic placement unit.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Application error types carried across the Temporal boundary. They are
// non-retryable since a retry would fail the same way.
const (
	ErrorTypeInvalidInput        = "InvalidInput"
	ErrorTypeEmptyCart           = "EmptyCart"
	ErrorTypeInsufficientStock   = "InsufficientStock"
	ErrorTypeIdempotencyConflict = "IdempotencyConflict"
)

var errorTypes = []struct {
	name     string
	sentinel error
}{
	{ErrorTypeInvalidInput, ordersapp.ErrInvalidInput},
	{ErrorTypeEmptyCart, ordersapp.ErrEmptyCart},
	{ErrorTypeInsufficientStock, catalogports.ErrInsufficientStock},
	{ErrorTypeIdempotencyConflict, ordersports.ErrIdempotencyConflict},
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder places the order. Callers must set an idempotency key so retries replay.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized")
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "lines", len(input.Lines), "attempt", activity.GetInfo(ctx).Attempt)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderNumber", order.OrderNumber)
	return order, nil
}

// EncodeError marks business failures as non-retryable application errors.
func EncodeError(err error) error {
	for _, t := range errorTypes {
		if errors.Is(err, t.sentinel) {
			return temporal.NewNonRetryableApplicationError(err.Error(), t.name, err)
		}
	}
	return err
}

// DecodeError restores the sentinel behind an application error returned by a workflow run.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	for _, t := range errorTypes {
		if appErr.Type() == t.name {
			return fmt.Errorf("%w: %s", t.sentinel, appErr.Message())
		}
	}
	return err
}
