package parser

import (
	"fmt"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/xuri/excelize/v2"
)

// tableFromRows builds a Table from raw sheet rows. The header is the first
// row of the non-empty data bounds; leading blank rows and columns are skipped.
func tableFromRows(sheetName string, rows [][]string) (*models.Table, error) {
	minRow, maxRow, minCol, _ := findDataBounds(rows)
	if minRow < 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheetName)
	}

	t := &models.Table{
		Sheet:  sheetName,
		Header: sliceFrom(rows[minRow], minCol),
		Rows:   make([][]string, 0, maxRow-minRow),
	}
	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		t.Rows = append(t.Rows, sliceFrom(rows[rowIdx], minCol))
	}
	return t, nil
}

// DataRange returns the A1-style range covering the non-empty cells of rows,
// or "" for an empty sheet.
func DataRange(rows [][]string) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

func sliceFrom(row []string, col int) []string {
	if col >= len(row) {
		return nil
	}
	out := make([]string, len(row)-col)
	copy(out, row[col:])
	return out
}
