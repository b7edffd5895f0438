package services

import (
	"testing"
	"time"

	"visa_crm_app_go/models"
	"visa_crm_app_go/services/dateutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = testDB.AutoMigrate(&models.Application{}, &models.SupportTicket{}, &models.ContactMessage{})
	require.NoError(t, err)

	return testDB
}

func testDates() *dateutil.Dates {
	return dateutil.New(dateutil.FixedClock(testNow))
}

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}
