package reports

import (
	"testing"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/parser"
)

var fullHeader = []string{
	"MECHNAT_ID", "BC_NAME", "BRANCH_NAME", "REGION_NAME", "STATE_NAME", "LOCATION TYPE",
	"CO ORDINATOR NAME", "TOTAL LOGGING DAYS", "TOTAL_FIN_SUCCESS", "TOTAL_FIN_SUCCESS_AMT",
	"TOTAL EKYC SUCCESS", "TOTAL APY SUCCESS", "TOTAL PMSBY SUCCESS", "TOTAL PMJJBY SUCCESS",
	"TOTAL LOAN RECOVERY", "TOTAL AMOUNT", "LOAN LEAD GENERATION COUNT",
}

// agent builds a full-header row. Unset KPIs are "0".
func agent(id, region, state, coordinator string, kpis map[string]string) []string {
	row := make([]string, len(fullHeader))
	for i, h := range fullHeader {
		switch h {
		case "MECHNAT_ID":
			row[i] = id
		case "BC_NAME":
			row[i] = "BC " + id
		case "BRANCH_NAME":
			row[i] = "Branch " + id
		case "REGION_NAME":
			row[i] = region
		case "STATE_NAME":
			row[i] = state
		case "LOCATION TYPE":
			row[i] = "RURAL"
		case "CO ORDINATOR NAME":
			row[i] = coordinator
		default:
			row[i] = "0"
			if v, ok := kpis[h]; ok {
				row[i] = v
			}
		}
	}
	return row
}

func dataset(t *testing.T, header []string, rows ...[]string) *models.Dataset {
	t.Helper()
	ds, err := parser.Normalize(&models.Table{Sheet: "DATA", Header: header, Rows: rows})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return ds
}

func cellValue(t *testing.T, r *models.Report, row int, column string) interface{} {
	t.Helper()
	idx := r.Column(column)
	if idx < 0 {
		t.Fatalf("%s: column %q not found in %q", r.Name, column, r.Columns)
	}
	return r.Rows[row].Cells[idx].Value
}
