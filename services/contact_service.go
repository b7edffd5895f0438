package services

import (
	"context"
	"fmt"
	"strings"

	"visa_crm_app_go/config"
	"visa_crm_app_go/models"
	"visa_crm_app_go/services/dateutil"

	"gorm.io/gorm"
)

// ContactInput is the landing page contact form.
type ContactInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`

	CaptchaToken string `json:"captcha_token" form:"cf-turnstile-response"`
}

// Normalize sanitizes every field.
func (in ContactInput) Normalize() ContactInput {
	return ContactInput{
		Name:    SanitizeText(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   SanitizeText(in.Phone),
		Message: SanitizeText(in.Message),

		CaptchaToken: strings.TrimSpace(in.CaptchaToken),
	}
}

// Validate returns field -> translation key for every invalid field.
func (in ContactInput) Validate() map[string]string {
	errors := make(map[string]string)
	if in.Name == "" {
		errors["name"] = "contact.error.name_required"
	}
	if !IsValidEmail(in.Email) {
		errors["email"] = "contact.error.email_invalid"
	}
	if in.Message == "" {
		errors["message"] = "contact.error.message_required"
	}
	return errors
}

// ContactService stores contact form submissions and forwards them to the support inbox.
type ContactService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewContactService creates a new contact service instance
func NewContactService(db *gorm.DB, cfg *config.Config) *ContactService {
	return &ContactService{db: db, cfg: cfg}
}

// Submit stores the message and returns the email for the support inbox.
func (s *ContactService) Submit(ctx context.Context, in ContactInput, ip string) (*models.ContactMessage, *Email, error) {
	msg := &models.ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		IPAddress: ip,
	}

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	email := BuildContactEmail(s.cfg.SupportInbox, ContactEmailData{
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Message:   msg.Message,
		CreatedAt: dateutil.FormatDateTime(msg.CreatedAt, s.cfg.DefaultLanguage, s.cfg.Location()),
	}, s.cfg.DefaultLanguage)

	return msg, email, nil
}
