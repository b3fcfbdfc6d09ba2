package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DispatchPending = "pending"
	DispatchSent    = "sent"
	DispatchFailed  = "failed"
	// Reserved for a future delivery-receipt webhook consumer.
	DispatchDelivered = "delivered"
)

// DispatchRecord is the durable log of one reminder send attempt. The
// partial unique index on appointment_id (status = 'sent') is what makes
// overlapping runs safe: at most one sent record can ever exist per
// appointment.
type DispatchRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID      uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:ux_dispatch_sent_appointment,where:status = 'sent'"`

	Phone             string `gorm:"type:varchar(20);not null"`
	Body              string `gorm:"type:text"`
	Status            string `gorm:"type:varchar(20);check:status IN ('pending','sent','failed','delivered')"`
	ErrorMessage      string `gorm:"type:text"`
	ProviderMessageID string
	SentAt            *time.Time

	gorm.Model
}

func (d *DispatchRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
