package dateutil

import (
	"visa_crm_app_go/services/i18n"
)

// Severity ranks how close a record is to its next required update.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityUrgent   Severity = "urgent"
	SeverityWarning  Severity = "warning"
	SeverityNormal   Severity = "normal"
)

// UpdateStatus is the badge shown next to a record that needs periodic updates.
type UpdateStatus struct {
	Text            string   `json:"text"`
	ColorClass      string   `json:"color_class"`
	BackgroundClass string   `json:"background_class"`
	Severity        Severity `json:"severity"`
}

// StatusFor maps the result of DaysUntilNextUpdate to a badge. Returns nil for nil.
//
//	0    critical (red)
//	1-3  urgent (orange)
//	4-7  warning (yellow)
//	>7   normal (green)
func StatusFor(lang string, daysUntil *int) *UpdateStatus {
	if daysUntil == nil {
		return nil
	}

	days := *daysUntil
	if days <= 0 {
		return &UpdateStatus{
			Text:            i18n.Translate(lang, "updates.due_today"),
			ColorClass:      "text-red-600",
			BackgroundClass: "bg-red-100",
			Severity:        SeverityCritical,
		}
	}

	text := i18n.Translate(lang, "updates.due_in", map[string]interface{}{"days": days})
	switch {
	case days <= 3:
		return &UpdateStatus{Text: text, ColorClass: "text-orange-600", BackgroundClass: "bg-orange-100", Severity: SeverityUrgent}
	case days <= 7:
		return &UpdateStatus{Text: text, ColorClass: "text-yellow-600", BackgroundClass: "bg-yellow-100", Severity: SeverityWarning}
	default:
		return &UpdateStatus{Text: text, ColorClass: "text-green-600", BackgroundClass: "bg-green-100", Severity: SeverityNormal}
	}
}
