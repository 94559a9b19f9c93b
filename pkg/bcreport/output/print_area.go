package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/parser"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// SetPrintArea defines the print area of a sheet.
func SetPrintArea(f *excelize.File, sheet string, area models.PrintArea) error {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1, true)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2, true)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: fmt.Sprintf("'%s'!%s:%s", strings.ReplaceAll(sheet, "'", "''"), start, end),
		Scope:    sheet,
	})
}

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}
	return result
}

// Inspect summarizes the sheets of a generated workbook in sheet order:
// non-empty row counts, the used data range and print areas.
func Inspect(r io.Reader) ([]models.SheetSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	areas := ExtractPrintAreas(f)
	var out []models.SheetSummary
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		n := 0
		for _, row := range rows {
			if len(row) > 0 {
				n++
			}
		}
		out = append(out, models.SheetSummary{
			SheetName:  sheet,
			Rows:       n,
			DataRange:  parser.DataRange(rows),
			PrintAreas: areas[sheet],
		})
	}
	return out, nil
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'Sheet Name'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var (
		areas     []models.PrintArea
		sheetName string
	)

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := part[:idx]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		if sheetName == "" {
			sheetName = sheet
		}

		if area := parseRangeToArea(part[idx+1:]); area != nil {
			areas = append(areas, *area)
		}
	}
	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to a PrintArea.
func parseRangeToArea(rangeStr string) *models.PrintArea {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.PrintArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}
}
