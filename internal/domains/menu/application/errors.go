package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
)

var (
	// ErrInvalidInput signals the item violated a domain invariant.
	ErrInvalidInput = errors.New("invalid menu item")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrMissingID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
