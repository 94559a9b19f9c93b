package output

import (
	"encoding/json"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// ToJSON serializes a report set.
func ToJSON(set *models.ReportSet, pretty bool) ([]byte, error) {
	return marshal(set, pretty)
}

// ReportToJSON serializes a single report.
func ReportToJSON(r *models.Report, pretty bool) ([]byte, error) {
	return marshal(r, pretty)
}

// SummaryToJSON serializes workbook sheet summaries.
func SummaryToJSON(s []models.SheetSummary, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
