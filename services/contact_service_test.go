package services

import (
	"context"
	"path/filepath"
	"testing"

	"visa_crm_app_go/config"
	"visa_crm_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactInputValidate(t *testing.T) {
	assert.Empty(t, ContactInput{Name: "Ali", Email: "ali@example.com", Message: "Merhaba"}.Normalize().Validate())

	errs := ContactInput{Name: " ", Email: "ali@", Message: ""}.Normalize().Validate()
	assert.Len(t, errs, 3)
	assert.Equal(t, "contact.error.email_invalid", errs["email"])
}

func TestContactServiceSubmit(t *testing.T) {
	useTemplatesDir(t, filepath.Join("..", "templates", "emails"))
	db := setupTestDB(t)
	svc := NewContactService(db, &config.Config{
		SupportInbox:    "destek@example.com",
		DefaultLanguage: "tr",
	})

	in := ContactInput{
		Name:    "Ali Veli",
		Email:   "ali@example.com",
		Phone:   "0555 000 00 00",
		Message: "Amerika vizesi için randevu almak istiyorum.",
	}.Normalize()

	msg, email, err := svc.Submit(context.Background(), in, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "10.0.0.1", msg.IPAddress)

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, "id = ?", msg.ID).Error)
	assert.Equal(t, "Ali Veli", stored.Name)

	assert.Equal(t, []string{"destek@example.com"}, email.To)
	assert.Equal(t, "ali@example.com", email.ReplyTo)
	assert.Equal(t, "Yeni iletişim mesajı: Ali Veli", email.Subject)
	assert.Contains(t, email.TextBody, "Telefon: 0555 000 00 00")
}
