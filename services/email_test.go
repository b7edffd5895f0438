package services

import (
	"os"
	"path/filepath"
	"testing"

	"visa_crm_app_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTemplatesDir points the email builders at dir for the duration of the test.
func useTemplatesDir(t *testing.T, dir string) {
	saved := EmailTemplatesDir
	EmailTemplatesDir = dir
	t.Cleanup(func() { EmailTemplatesDir = saved })
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	useTemplatesDir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_template.html"), []byte("<p>Merhaba {{.UserName}}</p>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_template.txt"), []byte("Merhaba {{.UserName}}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_template_en.html"), []byte("<p>Hello {{.UserName}}</p>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_template_en.txt"), []byte("Hello {{.UserName}}"), 0644))

	type data struct {
		UserName string
	}
	tplData := data{UserName: "Ayşe"}

	t.Run("Load Base Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "tr", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Merhaba Ayşe")
		assert.Contains(t, text, "Merhaba Ayşe")
	})

	t.Run("Load Localized Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "en", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello Ayşe")
		assert.Contains(t, text, "Hello Ayşe")
	})

	t.Run("Fallback to Base when Localized Missing", func(t *testing.T) {
		html, _, err := loadTemplate("test_template", "fr", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Merhaba Ayşe")
	})

	t.Run("Template Not Found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", "tr", tplData)
		assert.Error(t, err)
	})

	t.Run("Escapes HTML", func(t *testing.T) {
		html, _, err := loadTemplate("test_template", "tr", data{UserName: "<script>"})
		assert.NoError(t, err)
		assert.NotContains(t, html, "<script>")
	})
}

func TestBuildEmailWithFallback(t *testing.T) {
	dir := t.TempDir()
	useTemplatesDir(t, dir)

	os.WriteFile(filepath.Join(dir, "test_build.html"), []byte("HTML {{.Val}}"), 0644)
	os.WriteFile(filepath.Join(dir, "test_build.txt"), []byte("Text {{.Val}}"), 0644)

	email := buildEmailWithFallback("test_build", "en", map[string]string{"Val": "OK"}, "test@example.com")
	assert.Equal(t, []string{"test@example.com"}, email.To)
	assert.Equal(t, "HTML OK", email.HTMLBody)
	assert.Equal(t, "Text OK", email.TextBody)
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: true,
	}
	email := &Email{
		To:       []string{"test@example.com"},
		ReplyTo:  "reply@example.com",
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.NoError(t, err)
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "",
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "key",
	}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}

func TestTicketEmails(t *testing.T) {
	useTemplatesDir(t, filepath.Join("..", "templates", "emails"))

	data := TicketEmailData{
		TicketID:  "ticket-1",
		Name:      "Mehmet Yılmaz",
		Email:     "mehmet@example.com",
		Subject:   "Randevu tarihi",
		Message:   "Randevumu değiştirmek istiyorum.",
		Priority:  "high",
		CreatedAt: "05.03.2024 13:00",
	}

	t.Run("Notification", func(t *testing.T) {
		email := BuildTicketNotificationEmail("destek@example.com", data, "tr")
		assert.Equal(t, []string{"destek@example.com"}, email.To)
		assert.Equal(t, "mehmet@example.com", email.ReplyTo)
		assert.Equal(t, "Yeni destek talebi: Randevu tarihi", email.Subject)
		assert.Contains(t, email.HTMLBody, "ticket-1")
		assert.Contains(t, email.TextBody, "Randevumu değiştirmek istiyorum.")
	})

	t.Run("Confirmation", func(t *testing.T) {
		email := BuildTicketConfirmationEmail(data, "en")
		assert.Equal(t, []string{"mehmet@example.com"}, email.To)
		assert.Empty(t, email.ReplyTo)
		assert.Equal(t, "We received your request: Randevu tarihi", email.Subject)
		assert.Contains(t, email.TextBody, "Hello Mehmet Yılmaz")
	})
}

func TestBuildContactEmail(t *testing.T) {
	useTemplatesDir(t, filepath.Join("..", "templates", "emails"))

	email := BuildContactEmail("destek@example.com", ContactEmailData{
		Name:    "Zeynep",
		Email:   "zeynep@example.com",
		Message: "Schengen vizesi hakkında bilgi almak istiyorum.",
	}, "tr")

	assert.Equal(t, "Yeni iletişim mesajı: Zeynep", email.Subject)
	assert.Equal(t, "zeynep@example.com", email.ReplyTo)
	assert.Contains(t, email.TextBody, "Schengen vizesi")
	assert.NotContains(t, email.TextBody, "Telefon")
}

func TestBuildUpdateReminderEmail(t *testing.T) {
	useTemplatesDir(t, filepath.Join("..", "templates", "emails"))

	email := BuildUpdateReminderEmail("danisman@example.com", UpdateReminderEmailData{
		ConsultantName: "Elif",
		ApplicantName:  "Ali Veli",
		VisaType:       "student",
		Country:        "Germany",
		StatusText:     "Update due today",
		DaysOverdue:    4,
		Link:           "http://localhost:8080/applications/1",
	}, "en")

	assert.Equal(t, "Application for Ali Veli needs an update", email.Subject)
	assert.Contains(t, email.HTMLBody, "4 days overdue")
	assert.Contains(t, email.TextBody, "http://localhost:8080/applications/1")
}
