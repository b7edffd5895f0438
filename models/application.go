package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application status
const (
	ApplicationStatusNew         = "new"
	ApplicationStatusDocuments   = "documents"
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusAppointment = "appointment"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

// ClosedApplicationStatuses no longer need periodic updates.
var ClosedApplicationStatuses = []string{ApplicationStatusApproved, ApplicationStatusRejected}

// Application is a visa application tracked by a consultant. LastUpdatedAt drives the
// 20-day update cadence.
type Application struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Applicant
	ApplicantName  string `gorm:"not null;index" json:"applicant_name"`
	ApplicantEmail string `gorm:"not null" json:"applicant_email"`
	Phone          string `json:"phone,omitempty"`

	// Visa details
	VisaType string `gorm:"not null" json:"visa_type"` // tourist, student, work, family...
	Country  string `gorm:"not null;index" json:"country"`
	Status   string `gorm:"not null;default:new;index" json:"status"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	// Consultant responsible for keeping the record fresh
	ConsultantName  string `json:"consultant_name,omitempty"`
	ConsultantEmail string `json:"consultant_email,omitempty"`

	AppointmentAt *time.Time `json:"appointment_at,omitempty"`
	LastUpdatedAt *time.Time `gorm:"index" json:"last_updated_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Application model
func (Application) TableName() string {
	return "applications"
}

// IsValidApplicationStatus checks if the status is valid
func IsValidApplicationStatus(status string) bool {
	validStatuses := []string{
		ApplicationStatusNew,
		ApplicationStatusDocuments,
		ApplicationStatusSubmitted,
		ApplicationStatusAppointment,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
