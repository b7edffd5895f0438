package services

import (
	"bytes"
	"fmt"
	"time"

	"visa_crm_app_go/services/dateutil"
	"visa_crm_app_go/services/i18n"

	"github.com/xuri/excelize/v2"
)

// ExportApplications renders the given application views as an xlsx workbook.
func ExportApplications(views []ApplicationView, lang string, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.Translate(lang, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{
		i18n.Translate(lang, "export.headers.applicant"),    // A
		i18n.Translate(lang, "export.headers.email"),        // B
		i18n.Translate(lang, "export.headers.visa_type"),    // C
		i18n.Translate(lang, "export.headers.country"),      // D
		i18n.Translate(lang, "export.headers.status"),       // E
		i18n.Translate(lang, "export.headers.consultant"),   // F
		i18n.Translate(lang, "export.headers.created"),      // G
		i18n.Translate(lang, "export.headers.appointment"),  // H
		i18n.Translate(lang, "export.headers.last_updated"), // I
		i18n.Translate(lang, "export.headers.next_update"),  // J
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, v := range views {
		row := i + 2
		values := []interface{}{
			v.ApplicantName,
			v.ApplicantEmail,
			v.VisaType,
			v.Country,
			v.Status,
			v.ConsultantName,
			shortDate(&v.CreatedAt, lang, loc),
			dateutil.FormatDateTime(derefTime(v.AppointmentAt), lang, loc),
			shortDate(v.LastUpdatedAt, lang, loc),
			"",
		}
		if v.UpdateStatus != nil {
			values[9] = v.UpdateStatus.Text
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", headerStyle)
	f.SetColWidth(sheet, "A", "J", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf, nil
}

func shortDate(t *time.Time, lang string, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	ts := *t
	if loc != nil {
		ts = ts.In(loc)
	}
	return dateutil.ShortDate(ts, lang)
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
