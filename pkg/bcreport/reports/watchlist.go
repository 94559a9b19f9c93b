package reports

import (
	"fmt"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// Watch-list sheet names, in output order.
const (
	InactiveName = "Inactive"
	Below50Name  = "Below_50"
	Below100Name = "Below_100"
	SSSName      = "SSS"
)

// WatchListNames lists the watch lists in output order.
var WatchListNames = []string{InactiveName, Below50Name, Below100Name, SSSName}

var agentColumns = []models.Column{
	models.ColMerchantID,
	models.ColBCName,
	models.ColBranchName,
	models.ColRegionName,
	models.ColStateName,
	models.ColLocationType,
	models.ColLoggingDays,
}

type watchList struct {
	columns []models.Column
	keep    func(models.Record) bool
}

var watchLists = map[string]watchList{
	InactiveName: {
		columns: concat(agentColumns, models.ColCoordinator),
		keep:    idle,
	},
	Below50Name: {
		columns: concat(agentColumns, models.ColFinSuccess, models.ColCoordinator),
		keep: func(r models.Record) bool {
			return inBand(r.FinSuccess, band50Lo, band50Hi)
		},
	},
	Below100Name: {
		columns: concat(agentColumns, models.ColFinSuccess, models.ColCoordinator),
		keep: func(r models.Record) bool {
			return inBand(r.FinSuccess, band100Lo, band100Hi)
		},
	},
	SSSName: {
		columns: concat(agentColumns,
			models.ColAPYSuccess, models.ColPMSBYSuccess, models.ColPMJJBYSuccess, models.ColCoordinator),
		keep: func(r models.Record) bool {
			return r.LoggingDays > 0 && r.APYSuccess == 0 && r.PMSBYSuccess == 0 && r.PMJJBYSuccess == 0
		},
	},
}

// idle reports whether every activity KPI of the agent is zero.
func idle(r models.Record) bool {
	return r.LoggingDays == 0 &&
		r.EKYCSuccess == 0 &&
		r.APYSuccess == 0 &&
		r.PMSBYSuccess == 0 &&
		r.PMJJBYSuccess == 0 &&
		r.LoanRecovery == 0 &&
		r.RecoveryAmt.IsZero() &&
		r.LoanLeads == 0 &&
		r.FinSuccess == 0
}

func concat(base []models.Column, extra ...models.Column) []models.Column {
	out := make([]models.Column, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// WatchList filters the dataset into the named watch list, preserving row
// order, and appends a "Total Count" row. It returns nil when no row matches.
func WatchList(ds *models.Dataset, name string) (*models.Report, error) {
	wl, ok := watchLists[name]
	if !ok {
		return nil, fmt.Errorf("unknown watch list %q", name)
	}

	var cols []models.Column
	for _, c := range wl.columns {
		if ds.Has(c) {
			cols = append(cols, c)
		}
	}

	report := &models.Report{
		Name:    name,
		Kind:    models.KindWatchList,
		Columns: make([]string, len(cols)),
	}
	for i, c := range cols {
		report.Columns[i] = string(c)
	}

	for _, rec := range ds.Records {
		if !wl.keep(rec) {
			continue
		}
		row := models.Row{Cells: make([]models.Cell, len(cols))}
		for i, c := range cols {
			row.Cells[i] = models.Cell{Value: rec.Value(c)}
		}
		report.Rows = append(report.Rows, row)
	}
	if len(report.Rows) == 0 {
		return nil, nil
	}

	report.Rows = append(report.Rows, models.Row{
		Cells: []models.Cell{textCell(TotalCountLabel), {Value: int64(len(report.Rows))}},
		Total: true,
	})
	return report, nil
}

// WatchLists returns every non-empty watch list in output order.
func WatchLists(ds *models.Dataset) ([]models.Report, error) {
	var out []models.Report
	for _, name := range WatchListNames {
		r, err := WatchList(ds, name)
		if err != nil {
			return out, err
		}
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
