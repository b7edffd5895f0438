package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	SupportInbox  string
	// Localization
	DefaultLanguage string
	DisplayTimezone string
	// Update reminders
	UpdateReminderCron      string
	UpdateReminderThreshold int
	// Spam protection (Cloudflare Turnstile); empty disables the check
	TurnstileSecretKey string
	// Other
	AllowedOrigins []string
	AppURL         string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		DBPath:                  getEnv("DB_PATH", "db/app.db"),
		Environment:             getEnv("ENVIRONMENT", "development"),
		ResendAPIKey:            getEnv("RESEND_API_KEY", ""),
		EmailFrom:               getEnv("EMAIL_FROM", "noreply@vizedanismanlik.com"),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Vize CRM"),
		EmailTestMode:           getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		SupportInbox:            getEnv("SUPPORT_INBOX", "destek@vizedanismanlik.com"),
		DefaultLanguage:         getEnv("DEFAULT_LANGUAGE", "tr"),
		DisplayTimezone:         getEnv("DISPLAY_TIMEZONE", "Europe/Istanbul"),
		UpdateReminderCron:      getEnv("UPDATE_REMINDER_CRON", "0 8 * * *"),
		UpdateReminderThreshold: getEnvInt("UPDATE_REMINDER_THRESHOLD", 3),
		TurnstileSecretKey:      os.Getenv("TURNSTILE_SECRET_KEY"),
		AllowedOrigins:          strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:                  getEnv("APP_URL", "http://localhost:8080"),
	}
}

// Location resolves DisplayTimezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	if c.DisplayTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		log.Printf("[WARNING] Unknown DISPLAY_TIMEZONE %q, using UTC: %v", c.DisplayTimezone, err)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
