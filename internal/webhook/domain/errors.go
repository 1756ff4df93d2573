package domain

import (
	"github.com/allisson/vmadmin/internal/errors"
)

// Webhook errors.
var (
	// ErrValidation indicates a configuration was rejected before saving.
	ErrValidation = errors.Wrap(errors.ErrInvalidInput, "invalid webhook configuration")

	// ErrDelivery indicates the request to the webhook endpoint did not complete.
	ErrDelivery = errors.New("webhook delivery failed")

	// ErrNotConfigured indicates no configuration has been saved.
	ErrNotConfigured = errors.New("webhook is not configured")
)

func wrapValidation(err error) error {
	return errors.Wrap(ErrValidation, err.Error())
}
