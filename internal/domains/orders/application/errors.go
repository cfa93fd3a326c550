package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotificationFailed reports that the order change was stored but the
	// customer email was not written.
	ErrNotificationFailed = errors.New("order saved but notification failed")
	// ErrUnknownTransition rejects commands with an unsupported kind.
	ErrUnknownTransition = errors.New("unknown order transition")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrItemNotInOrder) ||
		errors.Is(err, domain.ErrItemNotOnMenu) ||
		errors.Is(err, domain.ErrInvalidTime) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
