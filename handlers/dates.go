package handlers

import (
	"errors"
	"net/http"

	"visa_crm_app_go/middleware"
	"visa_crm_app_go/services/dateutil"

	"github.com/labstack/echo/v4"
)

// NormalizeDateHandler returns the canonical ISO prefixes for a free-text date term
// GET /api/dates/normalize?q=05.03.2024&mode=all|best
func NormalizeDateHandler(c echo.Context) error {
	query := c.QueryParam("q")

	mode := dateutil.MatchAll
	switch c.QueryParam("mode") {
	case "", "all":
	case "best":
		mode = dateutil.MatchBest
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "mode must be 'all' or 'best'")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":      query,
		"candidates": Dates.Normalize(query, mode),
	})
}

// DateFormatsHandler returns the pre-rendered representations of a stored date
// GET /api/dates/formats?date=2024-03-05T10:00:00Z
func DateFormatsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, dateutil.DateFormats(c.QueryParam("date"), middleware.GetLocale(c)))
}

// DateMatchHandler reports whether a stored date matches a search term
// GET /api/dates/match?target=2024-03-05T10:00:00Z&q=05.03.2024
func DateMatchHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"match": Dates.IsDateMatch(c.QueryParam("target"), c.QueryParam("q")),
	})
}

// DaysBetweenHandler returns the whole days between two dates; "to" defaults to now
// GET /api/dates/days?from=2024-03-01&to=2024-03-05
func DaysBetweenHandler(c echo.Context) error {
	days, err := Dates.DaysBetween(c.QueryParam("from"), c.QueryParam("to"))
	if errors.Is(err, dateutil.ErrEmptyDate) || errors.Is(err, dateutil.ErrInvalidDate) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"days": days})
}
