package output

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/reports"
	"github.com/xuri/excelize/v2"
)

func sampleSet() *models.ReportSet {
	return &models.ReportSet{
		Source: "upload.xlsx",
		Reports: []models.Report{
			{
				Name:    reports.RegionSummaryName,
				Kind:    models.KindGrouped,
				Title:   "UPLOAD.XLSX",
				Columns: []string{"REGION", "STATE", "COORDINATOR", "TOTAL\nBC", "TOTAL\nTXN\nCOUNT"},
				Rows: []models.Row{
					{Cells: []models.Cell{{Value: "NORTH"}, {Value: "A"}, {Value: "JANE/JOHN"}, {Value: int64(2)}, {Value: int64(0), Zero: true}}},
					{Cells: []models.Cell{{Value: "GRAND TOTAL"}, {Value: ""}, {Value: ""}, {Value: int64(2)}, {Value: int64(0)}}, Total: true},
				},
			},
			{
				Name:    reports.PercentageName,
				Kind:    models.KindGrouped,
				Columns: []string{"CO_ORDINATOR", "STATE", "TOTAL_BC", "%INACTIVE"},
				Rows: []models.Row{
					{Cells: []models.Cell{{Value: "JANE"}, {Value: "A"}, {Value: int64(4)}, {Value: 50.0}}},
					{Cells: []models.Cell{{Value: "GRAND TOTAL"}, {Value: ""}, {Value: int64(4)}, {Value: 50.0}}, Total: true},
				},
			},
			{
				Name:    reports.InactiveName,
				Kind:    models.KindWatchList,
				Columns: []string{"MECHNAT_ID", "TOTAL LOGGING DAYS"},
				Rows: []models.Row{
					{Cells: []models.Cell{{Value: "M1"}, {Value: int64(0)}}},
					{Cells: []models.Cell{{Value: "Total Count"}, {Value: int64(1)}}, Total: true},
				},
			},
		},
	}
}

func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellStyle(%s!%s) failed: %v", sheet, cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle(%d) failed: %v", id, err)
	}
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return style.Fill.Color[0]
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleSet(), WriteOptions{}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{reports.RegionSummaryName, reports.PercentageName, reports.InactiveName}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected sheets %v, got %v", want, got)
	}

	cells := []struct {
		sheet, cell, want string
	}{
		{reports.RegionSummaryName, "C4", "UPLOAD.XLSX"},
		{reports.RegionSummaryName, "C5", "REGION"},
		{reports.RegionSummaryName, "F5", "TOTAL\nBC"},
		{reports.RegionSummaryName, "E6", "JANE/JOHN"},
		{reports.RegionSummaryName, "C7", "GRAND TOTAL"},
		{reports.PercentageName, "A1", "CO_ORDINATOR"},
		{reports.PercentageName, "D2", "50"},
		{reports.InactiveName, "B1", "TOTAL\nLOGGING\nDAYS"},
		{reports.InactiveName, "A3", "Total Count"},
		{reports.InactiveName, "B3", "1"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s) failed: %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s: expected %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}

	fills := []struct {
		sheet, cell, want string
	}{
		{reports.RegionSummaryName, "C4", colorTitle},
		{reports.RegionSummaryName, "C5", headerPalette[0]},
		{reports.RegionSummaryName, "D5", headerPalette[1]},
		{reports.RegionSummaryName, "G6", colorRed},
		{reports.RegionSummaryName, "F6", ""},
		{reports.RegionSummaryName, "G7", colorYellow},
		{reports.PercentageName, "A1", colorYellow},
		{reports.PercentageName, "A3", colorYellow},
		{reports.InactiveName, "A3", colorYellow},
	}
	for _, c := range fills {
		got := fillColor(t, f, c.sheet, c.cell)
		if (c.want == "" && got != "") || !strings.HasSuffix(strings.ToUpper(got), c.want) {
			t.Errorf("%s!%s: expected fill %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}

	if h, err := f.GetRowHeight(reports.InactiveName, 1); err != nil || h != watchHeaderHeight {
		t.Errorf("Expected watch list header height %d, got %v (%v)", watchHeaderHeight, h, err)
	}
	if w, err := f.GetColWidth(reports.PercentageName, "A"); err != nil || w != float64(len("CO_ORDINATOR")+widthPadding) {
		t.Errorf("Expected fitted width %d, got %v (%v)", len("CO_ORDINATOR")+widthPadding, w, err)
	}
}

func TestPrintAreasRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := SaveXLSX(path, sampleSet(), WriteOptions{}); err != nil {
		t.Fatalf("SaveXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open saved workbook: %v", err)
	}
	defer f.Close()

	areas := ExtractPrintAreas(f)
	want := map[string]string{
		reports.RegionSummaryName: "C4:G7",
		reports.PercentageName:    "A1:D3",
		reports.InactiveName:      "A1:B3",
	}
	for sheet, rng := range want {
		if len(areas[sheet]) != 1 {
			t.Errorf("%s: expected one print area, got %v", sheet, areas[sheet])
			continue
		}
		if got := areas[sheet][0].String(); got != rng {
			t.Errorf("%s: expected print area %s, got %s", sheet, rng, got)
		}
	}
}

func TestInspect(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleSet(), WriteOptions{}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	summaries, err := Inspect(&buf)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 sheets, got %d", len(summaries))
	}
	if s := summaries[0]; s.SheetName != reports.RegionSummaryName || s.Rows != 4 || len(s.PrintAreas) != 1 {
		t.Errorf("Unexpected Region Summary summary: %+v", s)
	}
	if s := summaries[0]; s.DataRange != "C4:G7" || len(s.PrintAreas) != 1 || s.DataRange != s.PrintAreas[0].String() {
		t.Errorf("Expected data range C4:G7 matching the print area, got %+v", s)
	}
	if s := summaries[2]; s.SheetName != reports.InactiveName || s.Rows != 3 || s.DataRange != "A1:B3" {
		t.Errorf("Unexpected Inactive summary: %+v", s)
	}
}

func TestWriteXLSXKeepsBaseSheets(t *testing.T) {
	base := excelize.NewFile()
	if err := base.SetSheetName("Sheet1", "DATA"); err != nil {
		t.Fatalf("Failed to rename sheet: %v", err)
	}
	base.SetCellValue("DATA", "A1", "MECHNAT_ID")
	var in bytes.Buffer
	if _, err := base.WriteTo(&in); err != nil {
		t.Fatalf("Failed to write base workbook: %v", err)
	}
	base.Close()

	var out bytes.Buffer
	if err := WriteXLSX(&out, sampleSet(), WriteOptions{Base: &in}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(&out)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{"DATA", reports.RegionSummaryName, reports.PercentageName, reports.InactiveName}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected sheets %v, got %v", want, got)
	}
	if v, _ := f.GetCellValue("DATA", "A1"); v != "MECHNAT_ID" {
		t.Errorf("Expected base data to be kept, got %q", v)
	}
}

func TestWriteXLSXDropsDefaultBaseSheet(t *testing.T) {
	tests := []struct {
		name   string
		sheets []string
		want   []string
	}{
		{"with data sheet", []string{"DATA", "Sheet"}, []string{"DATA", reports.RegionSummaryName, reports.PercentageName, reports.InactiveName}},
		{"only default sheet", []string{"Sheet"}, []string{"Sheet", reports.RegionSummaryName, reports.PercentageName, reports.InactiveName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := excelize.NewFile()
			if err := base.SetSheetName("Sheet1", tt.sheets[0]); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
			for _, name := range tt.sheets[1:] {
				if _, err := base.NewSheet(name); err != nil {
					t.Fatalf("Failed to add sheet: %v", err)
				}
			}
			var in bytes.Buffer
			if _, err := base.WriteTo(&in); err != nil {
				t.Fatalf("Failed to write base workbook: %v", err)
			}
			base.Close()

			var out bytes.Buffer
			if err := WriteXLSX(&out, sampleSet(), WriteOptions{Base: &in}); err != nil {
				t.Fatalf("WriteXLSX failed: %v", err)
			}
			f, err := excelize.OpenReader(&out)
			if err != nil {
				t.Fatalf("Failed to reopen workbook: %v", err)
			}
			defer f.Close()

			if got := f.GetSheetList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected sheets %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref       string
		wantSheet string
		wantAreas []models.PrintArea
	}{
		{"Sheet1!$A$1:$D$10", "Sheet1", []models.PrintArea{{R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"'Region Summary'!$C$4:$O$20", "Region Summary", []models.PrintArea{{R1: 4, C1: 3, R2: 20, C2: 15}}},
		{"'It''s'!$A$1:$B$2", "It's", []models.PrintArea{{R1: 1, C1: 1, R2: 2, C2: 2}}},
		{"S!$A$1:$A$2,S!$C$1:$C$2", "S", []models.PrintArea{{R1: 1, C1: 1, R2: 2, C2: 1}, {R1: 1, C1: 3, R2: 2, C2: 3}}},
		{"$A$1:$B$2", "", nil},
		{"S!bogus", "S", nil},
	}

	for _, tt := range tests {
		sheet, areas := parsePrintAreaReference(tt.ref)
		if sheet != tt.wantSheet {
			t.Errorf("%q: expected sheet %q, got %q", tt.ref, tt.wantSheet, sheet)
		}
		if !reflect.DeepEqual(areas, tt.wantAreas) {
			t.Errorf("%q: expected areas %v, got %v", tt.ref, tt.wantAreas, areas)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected int
	}{
		{nil, 0},
		{"TOTAL\nRECOVERY\nAMT", 8},
		{int64(12345), 5},
		{33.33, 5},
		{"ÑOÑO", 4},
	}

	for _, tt := range tests {
		if got := displayWidth(tt.input); got != tt.expected {
			t.Errorf("displayWidth(%v) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := Filename(ts); got != "Complete_Bank_Report_20240307.xlsx" {
		t.Errorf("Unexpected filename %q", got)
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleSet(), false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded struct {
		Source  string `json:"source"`
		Reports []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
			Rows []struct {
				Cells []struct {
					V    interface{} `json:"v"`
					Zero bool        `json:"zero"`
				} `json:"cells"`
				Total bool `json:"total"`
			} `json:"rows"`
		} `json:"reports"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if decoded.Source != "upload.xlsx" || len(decoded.Reports) != 3 {
		t.Fatalf("Unexpected document: %+v", decoded)
	}
	region := decoded.Reports[0]
	if region.Kind != string(models.KindGrouped) || !region.Rows[0].Cells[4].Zero || !region.Rows[1].Total {
		t.Errorf("Expected zero and total flags to survive, got %+v", region)
	}

	pretty, err := ReportToJSON(&sampleSet().Reports[2], true)
	if err != nil {
		t.Fatalf("ReportToJSON failed: %v", err)
	}
	if !bytes.Contains(pretty, []byte("\n  \"name\": \"Inactive\"")) {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}
