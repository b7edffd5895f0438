package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a landing page contact form submission.
type ContactMessage struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `gorm:"type:text;not null" json:"message"`

	IPAddress string `json:"-"`
}

// BeforeCreate hook to generate UUID
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}
