package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"` // may contain {nome} {cognome} {ora} {servizio} {location} {data}
	IsDefault bool      `gorm:"default:false;index"`

	gorm.Model
}

func (m *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
