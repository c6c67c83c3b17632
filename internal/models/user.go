package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	FirstName     string         `gorm:"not null" json:"firstName"`
	LastName      string         `gorm:"not null" json:"lastName"`
	Role          string         `gorm:"not null;default:'participant'" json:"role"`
	Events        []Event        `gorm:"foreignKey:OrganizerID" json:"events,omitempty"`
	Registrations []Registration `gorm:"foreignKey:UserID" json:"registrations,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
