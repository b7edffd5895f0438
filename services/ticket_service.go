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

// TicketInput is the JSON ticket payload accepted by the public ticket endpoint.
type TicketInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`

	CaptchaToken string `json:"captcha_token"`
}

// Normalize sanitizes every field and applies the default priority.
func (in TicketInput) Normalize() TicketInput {
	out := TicketInput{
		Name:     SanitizeText(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:  SanitizeText(in.Subject),
		Message:  SanitizeText(in.Message),
		Priority: strings.ToLower(strings.TrimSpace(in.Priority)),

		CaptchaToken: strings.TrimSpace(in.CaptchaToken),
	}
	if out.Priority == "" {
		out.Priority = models.TicketPriorityNormal
	}
	return out
}

// Validate returns field -> translation key for every invalid field. Call on normalized input.
func (in TicketInput) Validate() map[string]string {
	errors := make(map[string]string)
	if in.Name == "" {
		errors["name"] = "tickets.error.name_required"
	}
	if !IsValidEmail(in.Email) {
		errors["email"] = "tickets.error.email_invalid"
	}
	if in.Subject == "" {
		errors["subject"] = "tickets.error.subject_required"
	}
	if in.Message == "" {
		errors["message"] = "tickets.error.message_required"
	}
	if !models.IsValidTicketPriority(in.Priority) {
		errors["priority"] = "tickets.error.priority_invalid"
	}
	return errors
}

// TicketService persists support tickets and prepares their notification emails.
type TicketService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewTicketService creates a new ticket service instance
func NewTicketService(db *gorm.DB, cfg *config.Config) *TicketService {
	return &TicketService{db: db, cfg: cfg}
}

// Create stores a normalized, validated ticket.
func (s *TicketService) Create(ctx context.Context, in TicketInput, lang string) (*models.SupportTicket, error) {
	ticket := &models.SupportTicket{
		Name:     in.Name,
		Email:    in.Email,
		Subject:  in.Subject,
		Message:  in.Message,
		Priority: in.Priority,
		Status:   models.TicketStatusOpen,
		Language: lang,
	}

	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create support ticket: %w", err)
	}
	return ticket, nil
}

// NotificationEmails builds the inbox notification (in the default language) and the
// submitter's confirmation (in the ticket's language).
func (s *TicketService) NotificationEmails(ticket *models.SupportTicket) []*Email {
	data := TicketEmailData{
		TicketID:  ticket.ID,
		Name:      ticket.Name,
		Email:     ticket.Email,
		Subject:   ticket.Subject,
		Message:   ticket.Message,
		Priority:  ticket.Priority,
		CreatedAt: dateutil.FormatDateTime(ticket.CreatedAt, s.cfg.DefaultLanguage, s.cfg.Location()),
	}

	notification := BuildTicketNotificationEmail(s.cfg.SupportInbox, data, s.cfg.DefaultLanguage)

	data.CreatedAt = dateutil.FormatDateTime(ticket.CreatedAt, ticket.Language, s.cfg.Location())
	confirmation := BuildTicketConfirmationEmail(data, ticket.Language)

	return []*Email{notification, confirmation}
}
