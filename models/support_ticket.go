package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket priority levels
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
)

const TicketStatusOpen = "open"

// SupportTicket is a request submitted through the public ticket endpoint.
type SupportTicket struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;index" json:"email"`
	Subject  string `gorm:"not null" json:"subject"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Priority string `gorm:"not null;default:normal" json:"priority"`
	Status   string `gorm:"not null;default:open" json:"status"` // open, in_progress, resolved, closed
	Language string `gorm:"not null;default:tr" json:"language"`
}

// BeforeCreate hook to generate UUID
func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for SupportTicket model
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// IsValidTicketPriority checks if the priority is valid
func IsValidTicketPriority(priority string) bool {
	switch priority {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh:
		return true
	}
	return false
}
