package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderTwilio   = "twilio"
	ProviderCloudAPI = "cloud_api"
)

// ReminderConfig holds the outbound WhatsApp provider credentials.
// Exactly one row may be active at a time; the dispatch run refuses to
// start otherwise.
type ReminderConfig struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Provider string    `gorm:"type:varchar(20);not null;check:provider IN ('twilio','cloud_api')"`

	// Twilio account SID or Cloud API phone-number id.
	AccountID string `gorm:"not null"`
	AuthToken string `gorm:"not null"`
	// Sender number for the Twilio variant ("From").
	SenderNumber string
	// Base URL for the Cloud API variant; empty for Twilio.
	BaseURL  string
	IsActive bool `gorm:"default:false;index"`

	gorm.Model
}

func (r *ReminderConfig) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
