package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"visa_crm_app_go/db"
	"visa_crm_app_go/middleware"
	"visa_crm_app_go/models"
	"visa_crm_app_go/services"
	"visa_crm_app_go/services/dateutil"

	"github.com/labstack/echo/v4"
)

// CreateApplicationRequest is the body of POST /api/applications. Dates accept any layout
// understood by dateutil.Parse.
type CreateApplicationRequest struct {
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
	Phone           string `json:"phone"`
	VisaType        string `json:"visa_type"`
	Country         string `json:"country"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
	ConsultantName  string `json:"consultant_name"`
	ConsultantEmail string `json:"consultant_email"`
	AppointmentAt   string `json:"appointment_at"`
	LastUpdatedAt   string `json:"last_updated_at"`
}

func applicationFilter(c echo.Context) services.ApplicationFilter {
	filter := services.ApplicationFilter{
		Query:  c.QueryParam("q"),
		Date:   c.QueryParam("date"),
		Status: c.QueryParam("status"),
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	return filter
}

// ListApplicationsHandler lists applications with their update badges
// GET /api/applications?q=&date=&status=&limit=
func ListApplicationsHandler(c echo.Context) error {
	svc := services.NewApplicationService(db.DB, Dates, getConfig(c).Location())
	filter := applicationFilter(c)

	apps, err := svc.List(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Error("Failed to list applications:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load applications")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": svc.Views(apps, middleware.GetLocale(c)),
		"query":   filter.Query,
		"date":    filter.Date,
		"count":   len(apps),
	})
}

// GetApplicationHandler returns one application with its update badge
// GET /api/applications/:id
func GetApplicationHandler(c echo.Context) error {
	svc := services.NewApplicationService(db.DB, Dates, getConfig(c).Location())

	app, err := svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, services.ErrApplicationNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Application not found")
	}
	if err != nil {
		c.Logger().Error("Failed to load application:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load application")
	}

	return c.JSON(http.StatusOK, svc.View(*app, middleware.GetLocale(c)))
}

// CreateApplicationHandler stores a new application
// POST /api/applications
func CreateApplicationHandler(c echo.Context) error {
	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	app := &models.Application{
		ApplicantName:   req.ApplicantName,
		ApplicantEmail:  req.ApplicantEmail,
		Phone:           req.Phone,
		VisaType:        req.VisaType,
		Country:         req.Country,
		Status:          req.Status,
		Notes:           req.Notes,
		ConsultantName:  req.ConsultantName,
		ConsultantEmail: req.ConsultantEmail,
	}

	var err error
	if app.AppointmentAt, err = optionalDate(req.AppointmentAt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("appointment_at: %v", err))
	}
	if app.LastUpdatedAt, err = optionalDate(req.LastUpdatedAt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("last_updated_at: %v", err))
	}

	svc := services.NewApplicationService(db.DB, Dates, getConfig(c).Location())
	if err := svc.Create(c.Request().Context(), app); err != nil {
		if errors.Is(err, services.ErrInvalidApplication) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		c.Logger().Error("Failed to create application:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create application")
	}

	return c.JSON(http.StatusCreated, svc.View(*app, middleware.GetLocale(c)))
}

// TouchApplicationHandler restarts the update cadence of an application
// POST /api/applications/:id/touch
func TouchApplicationHandler(c echo.Context) error {
	svc := services.NewApplicationService(db.DB, Dates, getConfig(c).Location())

	app, err := svc.MarkUpdated(c.Request().Context(), c.Param("id"))
	if errors.Is(err, services.ErrApplicationNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Application not found")
	}
	if err != nil {
		c.Logger().Error("Failed to mark application updated:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update application")
	}

	return c.JSON(http.StatusOK, svc.View(*app, middleware.GetLocale(c)))
}

// ExportApplicationsHandler serves the filtered application list as an Excel file
// GET /api/applications/export?q=&date=&status=
func ExportApplicationsHandler(c echo.Context) error {
	loc := getConfig(c).Location()
	lang := middleware.GetLocale(c)
	svc := services.NewApplicationService(db.DB, Dates, loc)

	apps, err := svc.List(c.Request().Context(), applicationFilter(c))
	if err != nil {
		c.Logger().Error("Failed to list applications for export:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export applications")
	}

	buf, err := services.ExportApplications(svc.Views(apps, lang), lang, loc)
	if err != nil {
		c.Logger().Error("Failed to build export:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export applications")
	}

	filename := fmt.Sprintf("applications_%s.xlsx", Dates.Clock.Now().Format("2006-01-02"))
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+filename)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dateutil.Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
