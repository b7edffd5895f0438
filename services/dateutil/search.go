package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchMode selects how many candidates Normalize returns for an ambiguous term.
type MatchMode int

const (
	// MatchAll tries every shape and returns one candidate per shape that matches.
	MatchAll MatchMode = iota
	// MatchBest returns only the candidate of the highest priority shape that matches.
	MatchBest
)

// searchPattern turns one regex shape into a canonical ISO prefix.
type searchPattern struct {
	re    *regexp.Regexp
	build func(m []string, currentYear int) (string, bool)
}

// Order is priority: day-month-year wins over the US reading of the same string.
var searchPatterns = []searchPattern{
	{
		re: regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`),
		build: func(m []string, _ int) (string, bool) {
			return isoDay(m[3], m[2], m[1])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`),
		build: func(m []string, _ int) (string, bool) {
			return isoDay(m[1], m[2], m[3])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
		build: func(m []string, _ int) (string, bool) {
			return isoDay(m[3], m[1], m[2])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})$`),
		build: func(m []string, currentYear int) (string, bool) {
			return isoDay(strconv.Itoa(currentYear), m[2], m[1])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{4})$`),
		build: func(m []string, _ int) (string, bool) {
			return m[1], true
		},
	},
	{
		re: regexp.MustCompile(`^(\d{1,2})[./-](\d{4})$`),
		build: func(m []string, _ int) (string, bool) {
			month, ok := component(m[1], 12)
			if !ok {
				return "", false
			}
			return fmt.Sprintf("%s-%02d", m[2], month), true
		},
	},
}

func isoDay(year, month, day string) (string, bool) {
	mm, ok := component(month, 12)
	if !ok {
		return "", false
	}
	dd, ok := component(day, 31)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", year, mm, dd), true
}

func component(s string, upper int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > upper {
		return 0, false
	}
	return n, true
}

// Normalize maps a free-text search term to canonical ISO prefixes (YYYY-MM-DD, YYYY-MM or
// YYYY). Each shape is tested independently against the trimmed term, so MatchAll may return
// several candidates, e.g. "03/04/2024" yields both the day-month-year and the US reading.
// Unrecognized or empty input yields an empty slice.
func (d *Dates) Normalize(term string, mode MatchMode) []string {
	candidates := []string{}

	term = strings.TrimSpace(term)
	if term == "" {
		return candidates
	}

	year := d.Clock.Now().Year()
	for _, p := range searchPatterns {
		m := p.re.FindStringSubmatch(term)
		if m == nil {
			continue
		}
		candidate, ok := p.build(m, year)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
		if mode == MatchBest {
			break
		}
	}

	return candidates
}

// NormalizeDateSearch returns every candidate for term.
func (d *Dates) NormalizeDateSearch(term string) []string {
	return d.Normalize(term, MatchAll)
}

// IsDateMatch reports whether a stored ISO timestamp matches what the user typed. It matches
// when a normalized candidate is a prefix of targetISO, when a localized rendering of the
// date contains the term (case-insensitive), or when targetISO contains the term verbatim.
// Missing arguments and unparseable targets never match.
func (d *Dates) IsDateMatch(targetISO, term string) bool {
	term = strings.TrimSpace(term)
	if strings.TrimSpace(targetISO) == "" || term == "" {
		return false
	}

	t, err := Parse(targetISO)
	if err != nil {
		return false
	}

	for _, candidate := range d.NormalizeDateSearch(term) {
		if strings.HasPrefix(targetISO, candidate) {
			return true
		}
	}

	for _, lang := range []string{"tr", "en"} {
		lower := lowerCaser(lang)
		needle := lower.String(term)
		if strings.Contains(lower.String(ShortDate(t, lang)), needle) ||
			strings.Contains(lower.String(LongDate(t, lang)), needle) {
			return true
		}
	}

	return strings.Contains(targetISO, term)
}

// lowerCaser is created per call since a Caser must not be shared between goroutines.
func lowerCaser(lang string) cases.Caser {
	if lang == "tr" {
		return cases.Lower(language.Turkish)
	}
	return cases.Lower(language.English)
}

// Normalize uses the real clock.
func Normalize(term string, mode MatchMode) []string {
	return std.Normalize(term, mode)
}

// NormalizeDateSearch uses the real clock.
func NormalizeDateSearch(term string) []string {
	return std.NormalizeDateSearch(term)
}

// IsDateMatch uses the real clock.
func IsDateMatch(targetISO, term string) bool {
	return std.IsDateMatch(targetISO, term)
}
