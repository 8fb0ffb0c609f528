package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyCategory) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeThreshold) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
