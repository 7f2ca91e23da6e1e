package service

import (
	"errors"
	"fmt"

	"github.com/maheshrc27/contentflow/internal/identity"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

var (
	ErrInvalidCardID        = identity.ErrInvalidCardID
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrWebhookNotConfigured = webhook.ErrNotConfigured
)

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
