package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
	"github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConflict wraps registration against an existing email.
	ErrConflict = errors.New("user conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrInvalidCredentials) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
