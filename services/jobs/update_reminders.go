package jobs

import (
	"context"
	"fmt"
	"log"

	"visa_crm_app_go/config"
	"visa_crm_app_go/services"
	"visa_crm_app_go/services/dateutil"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler registers the update reminder job on cfg.UpdateReminderCron in the
// display timezone and starts the scheduler. The returned cron can be stopped on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(cfg.Location()))

	_, err := c.AddFunc(cfg.UpdateReminderCron, func() {
		log.Println("[CRON] Running SendUpdateReminders...")
		sent, err := SendUpdateReminders(context.Background(), database, cfg, dateutil.New(nil))
		if err != nil {
			log.Printf("[CRON] Update reminders failed: %v", err)
			return
		}
		log.Printf("[CRON] Update reminders sent: %d", sent)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule update reminders: %w", err)
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (%s, %s)", cfg.UpdateReminderCron, cfg.DisplayTimezone)
	return c, nil
}

// SendUpdateReminders emails the consultant of every open application that is within
// cfg.UpdateReminderThreshold days of its next required update. Applications without a
// consultant email are skipped. Returns the number of reminders sent.
func SendUpdateReminders(ctx context.Context, database *gorm.DB, cfg *config.Config, dates *dateutil.Dates) (int, error) {
	appService := services.NewApplicationService(database, dates, cfg.Location())

	apps, err := appService.DueForUpdate(ctx, cfg.UpdateReminderThreshold)
	if err != nil {
		return 0, err
	}

	log.Printf("Found %d applications due for update", len(apps))

	lang := cfg.DefaultLanguage
	loc := cfg.Location()
	sent := 0
	for _, app := range apps {
		if app.ConsultantEmail == "" {
			log.Printf("[WARNING] Application %s has no consultant email, skipping reminder", app.ID)
			continue
		}

		view := appService.View(app, lang)
		data := services.UpdateReminderEmailData{
			ConsultantName: app.ConsultantName,
			ApplicantName:  app.ApplicantName,
			VisaType:       app.VisaType,
			Country:        app.Country,
			DaysOverdue:    view.DaysOverdue,
			Link:           cfg.AppURL + "/applications/" + app.ID,
		}
		if app.LastUpdatedAt != nil {
			data.LastUpdated = dateutil.FormatDateTime(*app.LastUpdatedAt, lang, loc)
		}
		if view.UpdateStatus != nil {
			data.StatusText = view.UpdateStatus.Text
		}

		email := services.BuildUpdateReminderEmail(app.ConsultantEmail, data, lang)
		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send update reminder for application %s: %v", app.ID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
