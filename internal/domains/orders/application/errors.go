package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the checkout or admin request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrEmptyCart signals checkout with no line resolvable against the catalog.
	ErrEmptyCart = errors.New("cart is empty")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrMissingPhone) ||
		errors.Is(err, domain.ErrMissingEmail) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrNoItems) {
		return ErrEmptyCart
	}
	return err
}
