package handlers

import (
	"errors"
	"net/http"

	"visa_crm_app_go/config"
	"visa_crm_app_go/middleware"
	"visa_crm_app_go/services"
	"visa_crm_app_go/services/dateutil"
	"visa_crm_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// Dates is shared by every handler that needs "now".
var Dates = dateutil.New(nil)

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{DefaultLanguage: i18n.Default(), EmailTestMode: true}
}

// translateErrors turns field -> translation key into field -> message in the request language.
func translateErrors(c echo.Context, keys map[string]string) map[string]string {
	lang := middleware.GetLocale(c)
	out := make(map[string]string, len(keys))
	for field, key := range keys {
		out[field] = i18n.Translate(lang, key)
	}
	return out
}

// checkCaptcha verifies the form's Turnstile token when a secret key is configured.
func checkCaptcha(c echo.Context, cfg *config.Config, token string) error {
	if cfg.TurnstileSecretKey == "" {
		return nil
	}

	err := services.VerifyCaptcha(c.Request().Context(), token, cfg.TurnstileSecretKey, c.RealIP())
	if errors.Is(err, services.ErrCaptchaFailed) {
		c.Logger().Warnf("Captcha rejected: %v", err)
		return echo.NewHTTPError(http.StatusForbidden, "Captcha verification failed")
	}
	if err != nil {
		c.Logger().Error("Captcha verification error:", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Captcha verification unavailable")
	}
	return nil
}
