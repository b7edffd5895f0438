package db

import (
	"fmt"
	"log"

	"visa_crm_app_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	conn, err := Open(dbPath+"?_journal_mode=WAL", logLevel)
	if err != nil {
		return err
	}
	DB = conn

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// Open connects to a SQLite DSN without touching the package-level handle.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// Models lists every table owned by the application.
func Models() []interface{} {
	return []interface{}{
		&models.Application{},
		&models.SupportTicket{},
		&models.ContactMessage{},
	}
}

// AutoMigrate runs database migrations for the provided models, or for Models() when
// none are given.
func AutoMigrate(conn *gorm.DB, tables ...interface{}) error {
	if conn == nil {
		return fmt.Errorf("database not initialized")
	}
	if len(tables) == 0 {
		tables = Models()
	}

	if err := conn.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
