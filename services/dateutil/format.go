package dateutil

import (
	"fmt"
	"strconv"
	"time"

	"visa_crm_app_go/services/i18n"
)

// DefaultLanguage drives the day-month-year reading of ambiguous input.
const DefaultLanguage = "tr"

// Keys of the record returned by DateFormats.
const (
	FormatISO   = "iso"
	FormatShort = "short"
	FormatLong  = "long"
	FormatYear  = "year"
	FormatMonth = "month"
	FormatDay   = "day"
)

type layoutSet struct {
	short    string
	dateTime string
	// long receives the localized month name
	long func(t time.Time, month string) string
}

var layoutsByLang = map[string]layoutSet{
	"tr": {
		short:    "02.01.2006",
		dateTime: "02.01.2006 15:04",
		long: func(t time.Time, month string) string {
			return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
		},
	},
	"en": {
		short:    "01/02/2006",
		dateTime: "01/02/2006 15:04",
		long: func(t time.Time, month string) string {
			return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
		},
	},
}

func layoutFor(lang string) (string, layoutSet) {
	if set, ok := layoutsByLang[lang]; ok {
		return lang, set
	}
	return DefaultLanguage, layoutsByLang[DefaultLanguage]
}

// MonthName returns the localized name of m.
func MonthName(lang string, m time.Month) string {
	return i18n.Translate(lang, "date.months."+strconv.Itoa(int(m)))
}

// ShortDate renders t as a numeric date: 05.03.2024 (tr) or 03/05/2024 (en).
func ShortDate(t time.Time, lang string) string {
	_, set := layoutFor(lang)
	return t.Format(set.short)
}

// LongDate renders t with the month spelled out: 5 Mart 2024 (tr) or March 5, 2024 (en).
func LongDate(t time.Time, lang string) string {
	lang, set := layoutFor(lang)
	return set.long(t, MonthName(lang, t.Month()))
}

// FormatDateTime renders the day, month, year, hour and minute of t in the conventions of
// lang, converted to loc when loc is not nil. The zero time renders as "".
func FormatDateTime(t time.Time, lang string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	_, set := layoutFor(lang)
	return t.Format(set.dateTime)
}

// DateFormats returns the pre-rendered representations of a stored date, or an empty map
// when s is empty or cannot be parsed. Renderings keep the offset carried by s.
func DateFormats(s string, lang string) map[string]string {
	t, err := Parse(s)
	if err != nil {
		return map[string]string{}
	}

	return map[string]string{
		FormatISO:   t.Format(ISODate),
		FormatShort: ShortDate(t, lang),
		FormatLong:  LongDate(t, lang),
		FormatYear:  strconv.Itoa(t.Year()),
		FormatMonth: fmt.Sprintf("%02d", int(t.Month())),
		FormatDay:   fmt.Sprintf("%02d", t.Day()),
	}
}
