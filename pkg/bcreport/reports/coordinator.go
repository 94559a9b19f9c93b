package reports

import (
	"fmt"
	"sort"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// PercentageName is the sheet name of the coordinator breakdown.
const PercentageName = "PERCENTAGE"

// Financial-success bands counted among active agents.
const (
	band50Lo, band50Hi   = 1, 50
	band100Lo, band100Hi = 51, 100
)

// kpi is a product KPI whose uptake is split by agent activity.
type kpi struct {
	label string
	col   models.Column
	value func(models.Record) float64
}

var percentageKPIs = []kpi{
	{"APY", models.ColAPYSuccess, func(r models.Record) float64 { return r.APYSuccess }},
	{"PMSBY", models.ColPMSBYSuccess, func(r models.Record) float64 { return r.PMSBYSuccess }},
	{"PMJJBY", models.ColPMJJBYSuccess, func(r models.Record) float64 { return r.PMJJBYSuccess }},
}

// CoordinatorRow is one (coordinator, state) group of the percentage breakdown.
// KPIActivePct and KPINotActivePct are indexed like the APY, PMSBY, PMJJBY list.
type CoordinatorRow struct {
	Coordinator     string
	State           string
	TotalBC         int64
	ActiveBC        int64
	InactiveBC      int64
	InactivePct     float64
	AvgFinSuccess   float64
	Below50Count    int64
	Below50Pct      float64
	Below100Count   int64
	Below100Pct     float64
	KPIActivePct    [3]float64
	KPINotActivePct [3]float64
	GrandTotal      bool
}

type groupKey struct {
	coordinator string
	state       string
}

// groupCounts holds the raw counts of one group. Ratios are derived from
// these only after every record has been counted.
type groupCounts struct {
	total       int64
	active      int64
	finSum      float64
	activeFin   float64
	below50     int64
	below100    int64
	kpiActive   [3]int64
	kpiInactive [3]int64
}

func (c *groupCounts) add(rec models.Record) {
	c.total++
	c.finSum += rec.FinSuccess
	if rec.Active() {
		c.active++
		c.activeFin += rec.FinSuccess
		if inBand(rec.FinSuccess, band50Lo, band50Hi) {
			c.below50++
		}
		if inBand(rec.FinSuccess, band100Lo, band100Hi) {
			c.below100++
		}
	}
	for i, k := range percentageKPIs {
		if k.value(rec) <= 0 {
			continue
		}
		if rec.Active() {
			c.kpiActive[i]++
		} else {
			c.kpiInactive[i]++
		}
	}
}

func (c *groupCounts) inactive() int64 {
	return c.total - c.active
}

// row derives the ratio columns. avgFin is supplied by the caller because the
// group mean and the grand-total mean use different populations.
func (c *groupCounts) row(avgFin float64) CoordinatorRow {
	r := CoordinatorRow{
		TotalBC:       c.total,
		ActiveBC:      c.active,
		InactiveBC:    c.inactive(),
		InactivePct:   percent(c.inactive(), c.total),
		AvgFinSuccess: avgFin,
		Below50Count:  c.below50,
		Below50Pct:    percent(c.below50, c.active),
		Below100Count: c.below100,
		Below100Pct:   percent(c.below100, c.active),
	}
	for i := range percentageKPIs {
		r.KPIActivePct[i] = percent(c.kpiActive[i], c.active)
		r.KPINotActivePct[i] = percent(c.kpiInactive[i], c.inactive())
	}
	return r
}

// AnalyzeCoordinators computes the per-(coordinator, state) activity breakdown
// in ascending key order, followed by a grand total computed from global counts.
func AnalyzeCoordinators(records []models.Record) []CoordinatorRow {
	counts := make(map[groupKey]*groupCounts)
	var global groupCounts

	for _, rec := range records {
		k := groupKey{coordinator: rec.Coordinator, state: rec.State}
		c, ok := counts[k]
		if !ok {
			c = &groupCounts{}
			counts[k] = c
		}
		c.add(rec)
		global.add(rec)
	}

	keys := make([]groupKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].coordinator != keys[j].coordinator {
			return keys[i].coordinator < keys[j].coordinator
		}
		return keys[i].state < keys[j].state
	})

	rows := make([]CoordinatorRow, 0, len(keys)+1)
	for _, k := range keys {
		c := counts[k]
		r := c.row(mean(c.finSum, c.total))
		r.Coordinator = k.coordinator
		r.State = k.state
		rows = append(rows, r)
	}

	total := global.row(mean(global.activeFin, global.active))
	total.Coordinator = GrandTotalLabel
	total.GrandTotal = true
	return append(rows, total)
}

type percentageColumn struct {
	label string
	cell  func(CoordinatorRow) models.Cell
}

func percentageColumns(ds *models.Dataset, withInactive bool) []percentageColumn {
	cols := []percentageColumn{
		{"CO_ORDINATOR", func(r CoordinatorRow) models.Cell { return textCell(r.Coordinator) }},
		{"STATE", func(r CoordinatorRow) models.Cell { return textCell(r.State) }},
		{"TOTAL_BC", func(r CoordinatorRow) models.Cell { return models.Cell{Value: r.TotalBC} }},
		{"ACTIVE_BC", func(r CoordinatorRow) models.Cell { return models.Cell{Value: r.ActiveBC} }},
		{"INACTIVE_BC", func(r CoordinatorRow) models.Cell { return models.Cell{Value: r.InactiveBC} }},
		{"%INACTIVE", func(r CoordinatorRow) models.Cell { return floatCell(r.InactivePct) }},
		{"%AVG_FIN_SUCCESS", func(r CoordinatorRow) models.Cell { return floatCell(r.AvgFinSuccess) }},
		{"BELOW_50_CNT", func(r CoordinatorRow) models.Cell { return models.Cell{Value: r.Below50Count} }},
		{"BELOW_50_%", func(r CoordinatorRow) models.Cell { return floatCell(r.Below50Pct) }},
		{"BELOW_100_CNT", func(r CoordinatorRow) models.Cell { return models.Cell{Value: r.Below100Count} }},
		{"BELOW_100_%", func(r CoordinatorRow) models.Cell { return floatCell(r.Below100Pct) }},
	}
	for i, k := range percentageKPIs {
		if !ds.InSource(k.col) {
			continue
		}
		i := i
		cols = append(cols, percentageColumn{k.label + "_ACTIVE_%", func(r CoordinatorRow) models.Cell {
			return floatCell(r.KPIActivePct[i])
		}})
		if withInactive {
			cols = append(cols, percentageColumn{k.label + "_NOT_ACTIVE_%", func(r CoordinatorRow) models.Cell {
				return floatCell(r.KPINotActivePct[i])
			}})
		}
	}
	return cols
}

// CoordinatorPercentage builds the coordinator activity breakdown. When
// withInactive is set each KPI uptake column is followed by its uptake among
// inactive agents.
func CoordinatorPercentage(ds *models.Dataset, withInactive bool) (*models.Report, error) {
	if !ds.InSource(models.ColCoordinator) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, models.ColCoordinator)
	}

	cols := percentageColumns(ds, withInactive)
	report := &models.Report{
		Name:    PercentageName,
		Kind:    models.KindGrouped,
		Columns: make([]string, len(cols)),
	}
	for i, c := range cols {
		report.Columns[i] = c.label
	}

	for _, r := range AnalyzeCoordinators(ds.Records) {
		row := models.Row{Cells: make([]models.Cell, len(cols)), Total: r.GrandTotal}
		for i, c := range cols {
			row.Cells[i] = c.cell(r)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
