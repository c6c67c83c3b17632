package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title           string         `gorm:"type:varchar(200);not null" json:"title"`
	Description     string         `gorm:"not null" json:"description"`
	Location        string         `gorm:"not null" json:"location"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	EventDate       time.Time      `gorm:"not null" json:"eventDate"`
	ImageURL        string         `json:"imageUrl"`
	IsPublic        bool           `gorm:"not null" json:"isPublic"`
	MaxParticipants *int           `json:"maxParticipants"`
	OrganizerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"organizerId"`
	Organizer       *User          `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	CategoryID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category        *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Registrations   []Registration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
	Views           []EventView    `gorm:"foreignKey:EventID" json:"views,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
