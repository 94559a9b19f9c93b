package models

import (
	"fmt"
	"strings"
)

// PrintArea represents cell coordinate bounds of a report sheet's print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// String renders the area as an A1-style range such as "C4:O20".
func (a PrintArea) String() string {
	return columnName(a.C1) + fmt.Sprint(a.R1) + ":" + columnName(a.C2) + fmt.Sprint(a.R2)
}

// SheetSummary describes one sheet of a generated report workbook.
type SheetSummary struct {
	// SheetName is the sheet name.
	SheetName string `json:"sheet_name"`
	// Rows is the number of non-empty rows on the sheet.
	Rows int `json:"rows"`
	// DataRange is the A1-style range of the non-empty cells, or "".
	DataRange string `json:"data_range,omitempty"`
	// PrintAreas holds the print areas defined for the sheet.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}

func columnName(n int) string {
	var b strings.Builder
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i := len(buf) - 1; i >= 0; i-- {
		b.WriteByte(buf[i])
	}
	return b.String()
}
