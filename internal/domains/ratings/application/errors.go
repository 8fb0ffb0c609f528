package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
)

var (
	// ErrInvalidInput signals the review violated a rating invariant.
	ErrInvalidInput = errors.New("invalid rating input")
)

func mapError(err error) error {
	if errors.Is(err, domain.ErrRatingOutOfRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
