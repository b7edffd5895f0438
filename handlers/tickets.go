package handlers

import (
	"net/http"

	"visa_crm_app_go/db"
	"visa_crm_app_go/middleware"
	"visa_crm_app_go/services"

	"github.com/labstack/echo/v4"
)

// CreateTicketHandler stores a support ticket and notifies the support inbox and the submitter
// POST /api/tickets
func CreateTicketHandler(c echo.Context) error {
	cfg := getConfig(c)

	var in services.TicketInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	in = in.Normalize()
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": translateErrors(c, errs),
		})
	}

	if err := checkCaptcha(c, cfg, in.CaptchaToken); err != nil {
		return err
	}

	svc := services.NewTicketService(db.DB, cfg)
	ticket, err := svc.Create(c.Request().Context(), in, middleware.GetLocale(c))
	if err != nil {
		c.Logger().Error("Failed to create ticket:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create ticket")
	}

	for _, email := range svc.NotificationEmails(ticket) {
		services.SendEmailAsync(cfg, email)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":     ticket.ID,
		"status": ticket.Status,
	})
}
