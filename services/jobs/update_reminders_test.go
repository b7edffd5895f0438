package jobs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"visa_crm_app_go/config"
	"visa_crm_app_go/models"
	"visa_crm_app_go/services"
	"visa_crm_app_go/services/dateutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRemindersTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Application{}))
	return db
}

func TestSendUpdateReminders(t *testing.T) {
	saved := services.EmailTemplatesDir
	services.EmailTemplatesDir = filepath.Join("..", "..", "templates", "emails")
	defer func() { services.EmailTemplatesDir = saved }()

	db := setupRemindersTestDB(t)
	cfg := &config.Config{
		AppURL:                  "http://test.com",
		EmailTestMode:           true, // SendEmail logs to console instead of sending
		DefaultLanguage:         "tr",
		UpdateReminderThreshold: 3,
	}

	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	ago := func(days int) *time.Time {
		ts := now.AddDate(0, 0, -days)
		return &ts
	}

	apps := []models.Application{
		// 1. Due in two days (should be reminded)
		{ApplicantName: "Due Soon", ApplicantEmail: "a@example.com", VisaType: "student", Country: "Germany", Status: models.ApplicationStatusDocuments, ConsultantEmail: "elif@example.com", LastUpdatedAt: ago(18)},
		// 2. Overdue (should be reminded)
		{ApplicantName: "Overdue", ApplicantEmail: "b@example.com", VisaType: "tourist", Country: "Italy", Status: models.ApplicationStatusSubmitted, ConsultantEmail: "can@example.com", LastUpdatedAt: ago(25)},
		// 3. Fresh
		{ApplicantName: "Fresh", ApplicantEmail: "c@example.com", VisaType: "work", Country: "UK", Status: models.ApplicationStatusNew, ConsultantEmail: "elif@example.com", LastUpdatedAt: ago(1)},
		// 4. Overdue but closed
		{ApplicantName: "Closed", ApplicantEmail: "d@example.com", VisaType: "work", Country: "UK", Status: models.ApplicationStatusApproved, ConsultantEmail: "elif@example.com", LastUpdatedAt: ago(60)},
		// 5. Overdue without consultant
		{ApplicantName: "Orphan", ApplicantEmail: "e@example.com", VisaType: "work", Country: "UK", Status: models.ApplicationStatusNew, LastUpdatedAt: ago(30)},
	}
	for i := range apps {
		require.NoError(t, db.Create(&apps[i]).Error)
	}

	sent, err := SendUpdateReminders(context.Background(), db, cfg, dateutil.New(dateutil.FixedClock(now)))
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestStartScheduler(t *testing.T) {
	db := setupRemindersTestDB(t)

	t.Run("Valid schedule", func(t *testing.T) {
		c, err := StartScheduler(db, &config.Config{UpdateReminderCron: "0 8 * * *"})
		require.NoError(t, err)
		defer c.Stop()
		assert.Len(t, c.Entries(), 1)
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		_, err := StartScheduler(db, &config.Config{UpdateReminderCron: "every day"})
		assert.Error(t, err)
	})
}
