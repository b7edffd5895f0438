package handlers

import (
	"net/http"

	"visa_crm_app_go/db"
	"visa_crm_app_go/services"

	"github.com/labstack/echo/v4"
)

// ContactHandler stores a landing page contact message and forwards it to the support inbox
// POST /api/contact
func ContactHandler(c echo.Context) error {
	cfg := getConfig(c)

	var in services.ContactInput
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

	svc := services.NewContactService(db.DB, cfg)
	msg, email, err := svc.Submit(c.Request().Context(), in, c.RealIP())
	if err != nil {
		c.Logger().Error("Failed to store contact message:", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	services.SendEmailAsync(cfg, email)

	return c.JSON(http.StatusCreated, map[string]interface{}{"id": msg.ID})
}
