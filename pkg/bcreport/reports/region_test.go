package reports

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

func TestRegionSummaryTwoCoordinators(t *testing.T) {
	ds := dataset(t, fullHeader,
		agent("1", "North", "A", "John Doe", map[string]string{"TOTAL_FIN_SUCCESS": "10"}),
		agent("2", "North", "A", "Jane Roe", map[string]string{"TOTAL_FIN_SUCCESS": "20"}),
	)

	r, err := RegionSummary(ds)
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("Expected 1 group and a total row, got %d rows", len(r.Rows))
	}

	checks := []struct {
		row    int
		column string
		want   interface{}
	}{
		{0, "REGION", "NORTH"},
		{0, "STATE", "A"},
		{0, "COORDINATOR", "JANE/JOHN"},
		{0, "TOTAL\nBC", int64(2)},
		{0, "TOTAL\nTXN\nCOUNT", int64(30)},
		{1, "REGION", GrandTotalLabel},
		{1, "STATE", ""},
		{1, "COORDINATOR", ""},
		{1, "TOTAL\nBC", int64(2)},
		{1, "TOTAL\nTXN\nCOUNT", int64(30)},
	}
	for _, c := range checks {
		if got := cellValue(t, r, c.row, c.column); got != c.want {
			t.Errorf("row %d %q: expected %v (%T), got %v (%T)", c.row, c.column, c.want, c.want, got, got)
		}
	}
	if !r.Rows[1].Total || r.Rows[0].Total {
		t.Errorf("Expected only the last row to be the total row")
	}
}

func TestRegionSummaryColumns(t *testing.T) {
	r, err := RegionSummary(dataset(t, fullHeader, agent("1", "N", "A", "X", nil)))
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}
	want := []string{
		"REGION", "STATE", "COORDINATOR", "TOTAL\nBC", "TOTAL\nTXN\nCOUNT", "TOTAL\nTXN\nAMOUNT",
		"TOTAL\nEKYC", "TOTAL\nAPY", "TOTAL\nPMSBY", "TOTAL\nPMJJBY", "TOTAL\nLOAN\nRECOVERY",
		"TOTAL\nRECOVERY\nAMT", "TOTAL\nLOAN\nLEADS",
	}
	if len(r.Columns) != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), len(r.Columns))
	}
	for i := range want {
		if r.Columns[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], r.Columns[i])
		}
	}
}

func TestAggregateRegionsGrandTotalIsSumOfGroups(t *testing.T) {
	ds := dataset(t, fullHeader,
		agent("1", "North", "A", "Ann Lee", map[string]string{
			"TOTAL_FIN_SUCCESS": "5", "TOTAL_FIN_SUCCESS_AMT": "100.10", "TOTAL EKYC SUCCESS": "2",
			"TOTAL AMOUNT": "0.20", "LOAN LEAD GENERATION COUNT": "1",
		}),
		agent("2", "South", "B", "Bob Kay", map[string]string{
			"TOTAL_FIN_SUCCESS": "40", "TOTAL_FIN_SUCCESS_AMT": "200.20", "TOTAL APY SUCCESS": "3",
			"TOTAL AMOUNT": "0.10",
		}),
		agent("3", "South", "B", "Cid Moe", map[string]string{
			"TOTAL_FIN_SUCCESS": "7", "TOTAL PMSBY SUCCESS": "1", "TOTAL LOAN RECOVERY": "4",
		}),
		agent("4", "East", "C", "", map[string]string{"TOTAL PMJJBY SUCCESS": "6"}),
	)

	rows := AggregateRegions(ds.Records)
	if len(rows) != 4 {
		t.Fatalf("Expected 3 groups and a total, got %d rows", len(rows))
	}

	var sum RegionRow
	for _, r := range rows[:len(rows)-1] {
		if r.GrandTotal {
			t.Fatalf("Unexpected total row among groups: %+v", r)
		}
		sum.BCCount += r.BCCount
		sum.TxnCount += r.TxnCount
		sum.TxnAmount = sum.TxnAmount.Add(r.TxnAmount)
		sum.EKYC += r.EKYC
		sum.APY += r.APY
		sum.PMSBY += r.PMSBY
		sum.PMJJBY += r.PMJJBY
		sum.LoanRecovery += r.LoanRecovery
		sum.RecoveryAmt = sum.RecoveryAmt.Add(r.RecoveryAmt)
		sum.LoanLeads += r.LoanLeads
	}

	total := rows[len(rows)-1]
	if !total.GrandTotal || total.Region != GrandTotalLabel {
		t.Fatalf("Expected grand total last, got %+v", total)
	}
	if total.BCCount != sum.BCCount || total.TxnCount != sum.TxnCount || total.EKYC != sum.EKYC ||
		total.APY != sum.APY || total.PMSBY != sum.PMSBY || total.PMJJBY != sum.PMJJBY ||
		total.LoanRecovery != sum.LoanRecovery || total.LoanLeads != sum.LoanLeads {
		t.Errorf("Grand total %+v does not match group sums %+v", total, sum)
	}
	if !total.TxnAmount.Equal(decimal.RequireFromString("300.30")) {
		t.Errorf("Expected TXN AMOUNT 300.30, got %s", total.TxnAmount)
	}
	if !total.RecoveryAmt.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("Expected RECOVERY AMT 0.30 without float drift, got %s", total.RecoveryAmt)
	}
}

func TestAggregateRegionsOrder(t *testing.T) {
	ds := dataset(t, fullHeader,
		agent("1", "West", "Z", "A", map[string]string{"TOTAL_FIN_SUCCESS": "10"}),
		agent("2", "East", "Y", "B", map[string]string{"TOTAL_FIN_SUCCESS": "50"}),
		agent("3", "East", "X", "C", map[string]string{"TOTAL_FIN_SUCCESS": "10"}),
		agent("4", "Central", "Q", "D", map[string]string{"TOTAL_FIN_SUCCESS": "10"}),
	)

	rows := AggregateRegions(ds.Records)
	want := []struct{ region, state string }{
		{"EAST", "Y"},
		{"CENTRAL", "Q"},
		{"EAST", "X"},
		{"WEST", "Z"},
		{GrandTotalLabel, ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Region != w.region || rows[i].State != w.state {
			t.Errorf("row %d: expected %s/%s, got %s/%s", i, w.region, w.state, rows[i].Region, rows[i].State)
		}
	}
}

func TestRegionSummaryZeroFlags(t *testing.T) {
	ds := dataset(t, fullHeader,
		agent("1", "North", "A", "X", map[string]string{"TOTAL_FIN_SUCCESS": "3"}),
	)
	r, err := RegionSummary(ds)
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}

	group := r.Rows[0]
	for i, c := range group.Cells {
		wantZero := i >= 3 && r.Columns[i] != "TOTAL\nBC" && r.Columns[i] != "TOTAL\nTXN\nCOUNT"
		if c.Zero != wantZero {
			t.Errorf("column %q: expected Zero=%v, got %v", r.Columns[i], wantZero, c.Zero)
		}
	}
	for _, c := range r.TotalRow().Cells {
		if c.Zero {
			t.Errorf("Grand total cells must not be flagged, got %+v", c)
		}
	}
}

func TestRegionSummaryCountsTruncateAmountsDoNot(t *testing.T) {
	ds := dataset(t, fullHeader,
		agent("1", "North", "A", "X", map[string]string{"TOTAL_FIN_SUCCESS": "2.7", "TOTAL_FIN_SUCCESS_AMT": "10.25"}),
	)
	r, err := RegionSummary(ds)
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}
	if got := cellValue(t, r, 0, "TOTAL\nTXN\nCOUNT"); got != int64(2) {
		t.Errorf("Expected truncated count 2, got %v (%T)", got, got)
	}
	if got := cellValue(t, r, 0, "TOTAL\nTXN\nAMOUNT"); got != 10.25 {
		t.Errorf("Expected amount 10.25, got %v (%T)", got, got)
	}
}

func TestRegionSummaryMissingRegion(t *testing.T) {
	ds := dataset(t, []string{"MECHNAT_ID", "CO ORDINATOR NAME"}, []string{"1", "X"})
	_, err := RegionSummary(ds)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestRegionSummaryEmptyDataset(t *testing.T) {
	r, err := RegionSummary(dataset(t, fullHeader))
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}
	if len(r.Rows) != 1 || !r.Rows[0].Total {
		t.Fatalf("Expected only a grand total row, got %+v", r.Rows)
	}
	if got := cellValue(t, r, 0, "TOTAL\nBC"); got != int64(0) {
		t.Errorf("Expected TOTAL BC 0, got %v", got)
	}
}

func TestCoordinatorRollupIsOrderIndependent(t *testing.T) {
	names := []string{"john doe", "Jane Roe", "  ", "JOHN smith", "amy"}
	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
	}

	var first string
	for i, order := range orders {
		var recs []models.Record
		for _, idx := range order {
			recs = append(recs, models.Record{Region: "R", State: "S", Coordinator: names[idx]})
		}
		got := AggregateRegions(recs)[0].Coordinators
		if got != "AMY/JANE/JOHN" {
			t.Errorf("order %v: expected AMY/JANE/JOHN, got %q", order, got)
		}
		if i == 0 {
			first = got
		} else if got != first {
			t.Errorf("order %v: rollup %q differs from %q", order, got, first)
		}
	}
}
