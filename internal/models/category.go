package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"type:varchar(100);unique;not null" json:"name"`
	Description string         `json:"description"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	Events      []Event        `gorm:"foreignKey:CategoryID" json:"events,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}

// BeforeSave keeps the slug in sync with the name on create and update.
func (category *Category) BeforeSave(tx *gorm.DB) (err error) {
	category.Slug = slug.Make(category.Name)
	return
}
