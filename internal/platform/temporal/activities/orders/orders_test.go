package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
)

func TestEncodeError_BusinessFailuresAreNonRetryable(t *testing.T) {
	err := EncodeError(fmt.Errorf("%w: product 3", catalogports.ErrInsufficientStock))
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.True(t, appErr.NonRetryable())
	require.Equal(t, ErrorTypeInsufficientStock, appErr.Type())

	decoded := DecodeError(err)
	require.ErrorIs(t, decoded, catalogports.ErrInsufficientStock)
}

func TestEncodeError_InfrastructureFailuresRetry(t *testing.T) {
	raw := errors.New("connection reset")
	require.Same(t, raw, EncodeError(raw))
	require.Same(t, raw, DecodeError(raw))
}

func TestDecodeError_EmptyCart(t *testing.T) {
	err := temporal.NewNonRetryableApplicationError("cart is empty", ErrorTypeEmptyCart, nil)
	require.ErrorIs(t, DecodeError(err), ordersapp.ErrEmptyCart)
}
