package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	Client   Client    `gorm:"foreignKey:ClientID"`

	Date      time.Time `gorm:"type:date;index;not null"`
	Time      *string   `gorm:"type:varchar(5)"` // "HH:MM", nil = time to be confirmed
	Treatment *string
	Status    string `gorm:"type:varchar(20);default:'pending';check:status IN ('pending','completed','cancelled')"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
