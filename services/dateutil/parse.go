package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyDate is returned when no date value was supplied.
	ErrEmptyDate = errors.New("date is empty")
	// ErrInvalidDate is returned when a date string matches none of the accepted layouts.
	ErrInvalidDate = errors.New("invalid date")
)

// ISODate is the canonical calendar layout (YYYY-MM-DD).
const ISODate = "2006-01-02"

// layouts accepted by Parse, most specific first. Strings without an offset are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	ISODate,
}

// Parse reads a stored timestamp or calendar date.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
