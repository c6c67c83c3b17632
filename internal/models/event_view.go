package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventView is an append-only log of event detail fetches. Rows are never updated.
type EventView struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"eventId"`
	Event     *Event     `gorm:"foreignKey:EventID" json:"-"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	ViewDate  time.Time  `gorm:"not null;autoCreateTime" json:"viewDate"`
	IPAddress string     `json:"ipAddress,omitempty"`
	UserAgent string     `json:"userAgent,omitempty"`
}

func (view *EventView) BeforeCreate(tx *gorm.DB) (err error) {
	if view.ID == uuid.Nil {
		view.ID = uuid.New()
	}
	return
}
