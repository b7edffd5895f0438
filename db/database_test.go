package db

import (
	"testing"

	"visa_crm_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestAutoMigrate(t *testing.T) {
	conn, err := Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(conn))

	for _, table := range []interface{}{&models.Application{}, &models.SupportTicket{}, &models.ContactMessage{}} {
		assert.True(t, conn.Migrator().HasTable(table))
	}
}

func TestAutoMigrateWithoutConnection(t *testing.T) {
	assert.Error(t, AutoMigrate(nil))
}

func TestCloseWithoutConnection(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	assert.NoError(t, Close())
}
