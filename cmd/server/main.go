package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visa_crm_app_go/config"
	"visa_crm_app_go/db"
	"visa_crm_app_go/handlers"
	"visa_crm_app_go/middleware"
	"visa_crm_app_go/services/i18n"
	"visa_crm_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Load translations
	i18n.SetDefault(cfg.DefaultLanguage)
	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Date utilities
	dates := e.Group("/api/dates")
	{
		dates.GET("/normalize", handlers.NormalizeDateHandler)
		dates.GET("/formats", handlers.DateFormatsHandler)
		dates.GET("/match", handlers.DateMatchHandler)
		dates.GET("/days", handlers.DaysBetweenHandler)
	}

	// Applications
	applications := e.Group("/api/applications")
	{
		applications.GET("", handlers.ListApplicationsHandler)
		applications.POST("", handlers.CreateApplicationHandler)
		applications.GET("/export", handlers.ExportApplicationsHandler)
		applications.GET("/:id", handlers.GetApplicationHandler)
		applications.POST("/:id/touch", handlers.TouchApplicationHandler)
	}

	// Public forms (rate limited)
	e.POST("/api/tickets", handlers.CreateTicketHandler, middleware.TicketRateLimiter.Middleware())
	e.POST("/api/contact", handlers.ContactHandler, middleware.ContactRateLimiter.Middleware())

	// Background jobs
	scheduler, err := jobs.StartScheduler(db.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
