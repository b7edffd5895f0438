package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"visa_crm_app_go/config"
	"visa_crm_app_go/services/i18n"

	"github.com/resend/resend-go/v2"
)

// EmailTemplatesDir is where the *.html / *.txt email templates live.
var EmailTemplatesDir = "templates/emails"

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// buildEmailWithFallback loads a localized template and falls back to the default language
// when the localized one cannot be rendered.
func buildEmailWithFallback(templateName string, lang string, tmplData interface{}, toEmail string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, lang, tmplData)
	if err != nil {
		log.Printf("Error loading %s email template for lang %s: %v", templateName, lang, err)
	}

	if htmlBody == "" && textBody == "" {
		if fallback := i18n.Default(); lang != fallback {
			htmlBody, textBody, err = loadTemplate(templateName, fallback, tmplData)
			if err != nil {
				log.Printf("Error loading default '%s' template for %s: %v", fallback, templateName, err)
			}
		}
	}

	return &Email{
		To: []string{toEmail},
		// Subject is set by caller
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// loadTemplate loads templateName + "_" + lang + ".html/.txt" from EmailTemplatesDir,
// falling back to templateName + ".html/.txt".
func loadTemplate(templateName string, lang string, data interface{}) (html string, text string, err error) {
	loadAndExec := func(ext string) (string, error) {
		path := filepath.Join(EmailTemplatesDir, fmt.Sprintf("%s_%s%s", templateName, lang, ext))
		content, err := os.ReadFile(path)
		if err != nil {
			path = filepath.Join(EmailTemplatesDir, templateName+ext)
			content, err = os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("failed to read template %s: %w", path, err)
			}
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", path, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %w", path, err)
		}
		return buf.String(), nil
	}

	htmlContent, err := loadAndExec(".html")
	if err != nil {
		return "", "", err
	}

	textContent, err := loadAndExec(".txt")
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		ReplyTo: email.ReplyTo,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	if email.ReplyTo != "" {
		log.Printf("Reply-To: %s", email.ReplyTo)
	}
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so handlers do not block on the provider.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// TicketEmailData feeds both ticket emails: the inbox notification and the
// submitter's confirmation.
type TicketEmailData struct {
	TicketID  string
	Name      string
	Email     string
	Subject   string
	Message   string
	Priority  string
	CreatedAt string
}

// BuildTicketNotificationEmail notifies the support inbox about a new ticket.
// Replies go straight to the submitter.
func BuildTicketNotificationEmail(inbox string, data TicketEmailData, lang string) *Email {
	return buildTicketEmail("ticket_created", inbox, data, lang)
}

// BuildTicketConfirmationEmail tells the submitter their ticket was received.
func BuildTicketConfirmationEmail(data TicketEmailData, lang string) *Email {
	return buildTicketEmail("ticket_confirmation", data.Email, data, lang)
}

func buildTicketEmail(kind, to string, data TicketEmailData, lang string) *Email {
	email := buildEmailWithFallback(kind, lang, data, to)
	email.Subject = i18n.Translate(lang, "email."+kind+".subject", map[string]interface{}{"subject": data.Subject})
	if kind == "ticket_created" {
		email.ReplyTo = data.Email
	}
	return email
}

// ContactEmailData contains data for the contact form email template
type ContactEmailData struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt string
}

// BuildContactEmail forwards a landing page contact form submission to the support inbox.
func BuildContactEmail(inbox string, data ContactEmailData, lang string) *Email {
	email := buildEmailWithFallback("contact", lang, data, inbox)
	email.Subject = i18n.Translate(lang, "email.contact.subject", map[string]interface{}{"name": data.Name})
	email.ReplyTo = data.Email
	return email
}

// UpdateReminderEmailData contains data for the update reminder email template
type UpdateReminderEmailData struct {
	ConsultantName string
	ApplicantName  string
	VisaType       string
	Country        string
	LastUpdated    string
	StatusText     string
	DaysOverdue    int
	Link           string
}

// BuildUpdateReminderEmail reminds a consultant that an application is close to going stale.
func BuildUpdateReminderEmail(consultantEmail string, data UpdateReminderEmailData, lang string) *Email {
	email := buildEmailWithFallback("update_reminder", lang, data, consultantEmail)
	email.Subject = i18n.Translate(lang, "email.update_reminder.subject", map[string]interface{}{"applicant": data.ApplicantName})
	return email
}
