package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"visa_crm_app_go/config"
	"visa_crm_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default language
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := strings.ToLower(c.QueryParam("lang"))
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.Default()
				}
				setLanguageCookie(c, lang, cfg.Environment == "production")
			} else if cookie, err := c.Cookie("lang"); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)

			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// fromAcceptLanguage returns the first supported language listed in the header.
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if i18n.IsSupported(base) {
			return base
		}
	}
	return i18n.Default()
}

func setLanguageCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.Default()
}
