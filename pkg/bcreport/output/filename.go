package output

import "time"

// ContentType is the media type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename returns the download name of a report workbook generated at t.
func Filename(t time.Time) string {
	return "Complete_Bank_Report_" + t.Format("20060102") + ".xlsx"
}
