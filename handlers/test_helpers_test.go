package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"visa_crm_app_go/config"
	"visa_crm_app_go/db"
	"visa_crm_app_go/models"
	"visa_crm_app_go/services"
	"visa_crm_app_go/services/dateutil"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(testDB))

	// Set global DB
	db.DB = testDB
	Dates = dateutil.New(dateutil.FixedClock(testNow))
	services.EmailTemplatesDir = "../templates/emails"

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:     "test",
		EmailTestMode:   true,
		SupportInbox:    "support@example.com",
		DefaultLanguage: "tr",
		DisplayTimezone: "UTC",
	})

	return e, c, rec
}

func createApplication(t *testing.T, testDB *gorm.DB, name string, lastUpdated time.Time) models.Application {
	app := models.Application{
		ApplicantName:  name,
		ApplicantEmail: "applicant@example.com",
		VisaType:       "student",
		Country:        "Germany",
		Status:         models.ApplicationStatusDocuments,
		CreatedAt:      time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
		LastUpdatedAt:  &lastUpdated,
	}
	require.NoError(t, testDB.Create(&app).Error)
	return app
}
