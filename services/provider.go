package services

import (
	"fmt"

	"salonbook-backend/models"
)

// Provider is the single contract both WhatsApp providers are normalized
// behind. Send returns the provider's message id on success. It never
// retries; retry policy belongs to the caller.
type Provider interface {
	Send(phone, body string) (string, error)
}

// NewProvider builds the adapter matching the active configuration.
// Credentials come from the config row, never from the environment.
func NewProvider(cfg *models.ReminderConfig) (Provider, error) {
	switch cfg.Provider {
	case models.ProviderTwilio:
		return NewTwilioProvider(cfg), nil
	case models.ProviderCloudAPI:
		return NewCloudAPIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Provider)
	}
}
