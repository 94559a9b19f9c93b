package parser

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// ReadXLS reads the named sheet of a legacy .xls (BIFF) workbook.
// The BIFF decoder panics on some malformed streams; those are reported as
// ErrInvalidFormat.
func ReadXLS(r io.ReadSeeker, sheetName string) (t *models.Table, err error) {
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, fmt.Errorf("%w: %v", ErrInvalidFormat, p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil || ws.Name != sheetName {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for rowIdx := 0; rowIdx <= int(ws.MaxRow); rowIdx++ {
			row := ws.Row(rowIdx)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for colIdx := row.FirstCol(); colIdx < row.LastCol(); colIdx++ {
				cells[colIdx] = row.Col(colIdx)
			}
			rows = append(rows, cells)
		}
		return tableFromRows(sheetName, rows)
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
}
