package reports

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// RegionSummaryName is the sheet name of the region/state rollup.
const RegionSummaryName = "Region Summary"

// regionZeroFrom is the first column whose zero values are flagged.
const regionZeroFrom = 3

// RegionRow is one (region, state) group of the region summary.
type RegionRow struct {
	Region       string
	State        string
	Coordinators string
	BCCount      int64
	TxnCount     float64
	TxnAmount    decimal.Decimal
	EKYC         float64
	APY          float64
	PMSBY        float64
	PMJJBY       float64
	LoanRecovery float64
	RecoveryAmt  decimal.Decimal
	LoanLeads    float64
	GrandTotal   bool
}

type regionKey struct {
	region string
	state  string
}

// regionColumns is the fixed display layout of the region summary.
var regionColumns = []struct {
	label string
	cell  func(RegionRow) models.Cell
}{
	{"REGION", func(r RegionRow) models.Cell { return textCell(r.Region) }},
	{"STATE", func(r RegionRow) models.Cell { return textCell(r.State) }},
	{"COORDINATOR", func(r RegionRow) models.Cell { return textCell(r.Coordinators) }},
	{"TOTAL\nBC", func(r RegionRow) models.Cell { return models.Cell{Value: r.BCCount} }},
	{"TOTAL\nTXN\nCOUNT", func(r RegionRow) models.Cell { return countCell(r.TxnCount) }},
	{"TOTAL\nTXN\nAMOUNT", func(r RegionRow) models.Cell { return amountCell(r.TxnAmount) }},
	{"TOTAL\nEKYC", func(r RegionRow) models.Cell { return countCell(r.EKYC) }},
	{"TOTAL\nAPY", func(r RegionRow) models.Cell { return countCell(r.APY) }},
	{"TOTAL\nPMSBY", func(r RegionRow) models.Cell { return countCell(r.PMSBY) }},
	{"TOTAL\nPMJJBY", func(r RegionRow) models.Cell { return countCell(r.PMJJBY) }},
	{"TOTAL\nLOAN\nRECOVERY", func(r RegionRow) models.Cell { return countCell(r.LoanRecovery) }},
	{"TOTAL\nRECOVERY\nAMT", func(r RegionRow) models.Cell { return amountCell(r.RecoveryAmt) }},
	{"TOTAL\nLOAN\nLEADS", func(r RegionRow) models.Cell { return countCell(r.LoanLeads) }},
}

// AggregateRegions groups records by (region, state), sorts the groups by
// transaction count, highest first, and appends the grand total row.
func AggregateRegions(records []models.Record) []RegionRow {
	groups := make(map[regionKey]*RegionRow)
	names := make(map[regionKey]map[string]struct{})
	var keys []regionKey

	for _, rec := range records {
		k := regionKey{region: rec.Region, state: rec.State}
		g, ok := groups[k]
		if !ok {
			g = &RegionRow{Region: rec.Region, State: rec.State}
			groups[k] = g
			names[k] = make(map[string]struct{})
			keys = append(keys, k)
		}
		if tok, ok := firstToken(rec.Coordinator); ok {
			names[k][tok] = struct{}{}
		}
		g.BCCount++
		g.TxnCount += rec.FinSuccess
		g.TxnAmount = g.TxnAmount.Add(rec.FinSuccessAmt)
		g.EKYC += rec.EKYCSuccess
		g.APY += rec.APYSuccess
		g.PMSBY += rec.PMSBYSuccess
		g.PMJJBY += rec.PMJJBYSuccess
		g.LoanRecovery += rec.LoanRecovery
		g.RecoveryAmt = g.RecoveryAmt.Add(rec.RecoveryAmt)
		g.LoanLeads += rec.LoanLeads
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].region != keys[j].region {
			return keys[i].region < keys[j].region
		}
		return keys[i].state < keys[j].state
	})

	rows := make([]RegionRow, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		g.Coordinators = coordinatorRollup(names[k])
		rows = append(rows, *g)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TxnCount > rows[j].TxnCount
	})

	total := RegionRow{Region: GrandTotalLabel, GrandTotal: true}
	for _, r := range rows {
		total.BCCount += r.BCCount
		total.TxnCount += r.TxnCount
		total.TxnAmount = total.TxnAmount.Add(r.TxnAmount)
		total.EKYC += r.EKYC
		total.APY += r.APY
		total.PMSBY += r.PMSBY
		total.PMJJBY += r.PMJJBY
		total.LoanRecovery += r.LoanRecovery
		total.RecoveryAmt = total.RecoveryAmt.Add(r.RecoveryAmt)
		total.LoanLeads += r.LoanLeads
	}
	return append(rows, total)
}

// RegionSummary builds the region/state rollup report.
func RegionSummary(ds *models.Dataset) (*models.Report, error) {
	if !ds.InSource(models.ColRegionName) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, models.ColRegionName)
	}

	report := &models.Report{
		Name:    RegionSummaryName,
		Kind:    models.KindGrouped,
		Columns: make([]string, len(regionColumns)),
	}
	for i, c := range regionColumns {
		report.Columns[i] = c.label
	}

	for _, r := range AggregateRegions(ds.Records) {
		row := models.Row{Cells: make([]models.Cell, len(regionColumns)), Total: r.GrandTotal}
		for i, c := range regionColumns {
			cell := c.cell(r)
			if !r.GrandTotal && i >= regionZeroFrom && isZero(cell.Value) {
				cell.Zero = true
			}
			row.Cells[i] = cell
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func amountCell(d decimal.Decimal) models.Cell {
	return models.Cell{Value: models.NumberValue(d.InexactFloat64())}
}

func isZero(v interface{}) bool {
	switch n := v.(type) {
	case int64:
		return n == 0
	case float64:
		return n == 0
	}
	return false
}
