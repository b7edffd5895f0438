package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"visa_crm_app_go/models"
	"visa_crm_app_go/services/dateutil"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidApplication  = errors.New("invalid application")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// dateScanBatchSize is how many rows List reads per query while matching a date term.
var dateScanBatchSize = 100

// ApplicationFilter narrows the application list. Date is a free-text date term
// ("05.03.2024", "3/2024", "mart") matched against the record's dates.
type ApplicationFilter struct {
	Query  string
	Date   string
	Status string
	Limit  int
}

// ApplicationView is an application plus its update badge.
type ApplicationView struct {
	models.Application
	DaysUntilUpdate *int                   `json:"days_until_update"`
	DaysOverdue     int                    `json:"days_overdue"`
	UpdateStatus    *dateutil.UpdateStatus `json:"update_status"`
}

// ApplicationService handles visa application records. Date search terms are matched
// against dates rendered in loc, the timezone users see them in.
type ApplicationService struct {
	db    *gorm.DB
	dates *dateutil.Dates
	loc   *time.Location
}

// NewApplicationService creates a new application service instance. A nil loc means UTC.
func NewApplicationService(db *gorm.DB, dates *dateutil.Dates, loc *time.Location) *ApplicationService {
	if dates == nil {
		dates = dateutil.New(nil)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ApplicationService{db: db, dates: dates, loc: loc}
}

// List returns applications matching filter, newest first.
func (s *ApplicationService) List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := s.db.WithContext(ctx).Model(&models.Application{})

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"applicant_name LIKE ? OR applicant_email LIKE ? OR visa_type LIKE ? OR country LIKE ?",
			like, like, like, like,
		)
	}

	query = query.Order("created_at desc").Order("id desc")

	dateTerm := strings.TrimSpace(filter.Date)
	if dateTerm == "" {
		var apps []models.Application
		if err := query.Limit(limit).Find(&apps).Error; err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}
		return apps, nil
	}

	// Date terms are matched in Go since they cover several textual renderings. Rows are
	// read in batches until limit matches are found.
	matched := make([]models.Application, 0)
	for offset := 0; ; offset += dateScanBatchSize {
		var batch []models.Application
		if err := query.Session(&gorm.Session{}).Offset(offset).Limit(dateScanBatchSize).Find(&batch).Error; err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}

		for _, app := range batch {
			if s.matchesDate(app, dateTerm) {
				matched = append(matched, app)
				if len(matched) == limit {
					return matched, nil
				}
			}
		}

		if len(batch) < dateScanBatchSize {
			return matched, nil
		}
	}
}

func (s *ApplicationService) matchesDate(app models.Application, term string) bool {
	candidates := []time.Time{app.CreatedAt}
	if app.LastUpdatedAt != nil {
		candidates = append(candidates, *app.LastUpdatedAt)
	}
	if app.AppointmentAt != nil {
		candidates = append(candidates, *app.AppointmentAt)
	}

	for _, t := range candidates {
		if t.IsZero() {
			continue
		}
		if s.dates.IsDateMatch(t.In(s.loc).Format(time.RFC3339), term) {
			return true
		}
	}
	return false
}

// Get fetches an application by ID
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &app, nil
}

// Create validates and stores a new application. A missing LastUpdatedAt starts the
// update cadence now.
func (s *ApplicationService) Create(ctx context.Context, app *models.Application) error {
	app.ApplicantName = SanitizeText(app.ApplicantName)
	app.ApplicantEmail = strings.ToLower(strings.TrimSpace(app.ApplicantEmail))
	app.VisaType = SanitizeText(app.VisaType)
	app.Country = SanitizeText(app.Country)
	app.Notes = SanitizeText(app.Notes)

	if app.Status == "" {
		app.Status = models.ApplicationStatusNew
	}

	switch {
	case app.ApplicantName == "":
		return fmt.Errorf("%w: applicant name is required", ErrInvalidApplication)
	case !IsValidEmail(app.ApplicantEmail):
		return fmt.Errorf("%w: applicant email is invalid", ErrInvalidApplication)
	case app.VisaType == "":
		return fmt.Errorf("%w: visa type is required", ErrInvalidApplication)
	case app.Country == "":
		return fmt.Errorf("%w: country is required", ErrInvalidApplication)
	case !models.IsValidApplicationStatus(app.Status):
		return fmt.Errorf("%w: unknown status %q", ErrInvalidApplication, app.Status)
	case app.ConsultantEmail != "" && !IsValidEmail(app.ConsultantEmail):
		return fmt.Errorf("%w: consultant email is invalid", ErrInvalidApplication)
	}

	if app.LastUpdatedAt == nil {
		now := s.dates.Clock.Now().UTC()
		app.LastUpdatedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// MarkUpdated restarts the update cadence of an application.
func (s *ApplicationService) MarkUpdated(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.dates.Clock.Now().UTC()
	if err := s.db.WithContext(ctx).Model(app).Update("last_updated_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to mark application updated: %w", err)
	}
	app.LastUpdatedAt = &now
	return app, nil
}

// View attaches the update badge to an application.
func (s *ApplicationService) View(app models.Application, lang string) ApplicationView {
	days := s.dates.DaysUntilNextUpdate(app.LastUpdatedAt)
	return ApplicationView{
		Application:     app,
		DaysUntilUpdate: days,
		DaysOverdue:     s.dates.DaysOverdue(app.LastUpdatedAt),
		UpdateStatus:    dateutil.StatusFor(lang, days),
	}
}

// Views attaches the update badge to every application.
func (s *ApplicationService) Views(apps []models.Application, lang string) []ApplicationView {
	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, s.View(app, lang))
	}
	return views
}

// DueForUpdate returns open applications whose next update is at most threshold days away.
// Applications that were never updated are included as well.
func (s *ApplicationService) DueForUpdate(ctx context.Context, threshold int) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).
		Where("status NOT IN ?", models.ClosedApplicationStatuses).
		Order("last_updated_at asc").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	due := make([]models.Application, 0)
	for _, app := range apps {
		days := s.dates.DaysUntilNextUpdate(app.LastUpdatedAt)
		if days == nil || *days <= threshold {
			due = append(due, app)
		}
	}
	return due, nil
}
