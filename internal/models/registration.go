package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

func IsValidRegistrationStatus(status string) bool {
	return status == StatusPending || status == StatusConfirmed || status == StatusCancelled
}

type Registration struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event" json:"userId"`
	User             *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event" json:"eventId"`
	Event            *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	RegistrationDate time.Time `gorm:"not null;autoCreateTime" json:"registrationDate"`
	Status           string    `gorm:"not null;default:'confirmed'" json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	return
}
