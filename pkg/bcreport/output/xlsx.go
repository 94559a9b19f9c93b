// Package output renders report sets as styled xlsx workbooks and JSON.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/reports"
	"github.com/xuri/excelize/v2"
)

// Sheet layout.
const (
	regionTitleRow  = 4
	regionHeaderRow = 5
	regionFirstCol  = 3

	defaultBaseSheet = "Sheet"

	watchHeaderHeight = 40
	widthPadding      = 4
	maxColumnWidth    = 255
)

// WriteOptions configures workbook output.
type WriteOptions struct {
	// Base is an .xlsx workbook whose sheets are kept ahead of the report
	// sheets. Report sheets replace base sheets of the same name; a default
	// "Sheet" is dropped when the base has other sheets.
	Base io.Reader
}

// NewWorkbook renders set as a workbook with one sheet per report.
// The caller must close the returned file.
func NewWorkbook(set *models.ReportSet, opts WriteOptions) (*excelize.File, error) {
	var (
		f           *excelize.File
		placeholder string
		err         error
	)
	if opts.Base != nil {
		f, err = excelize.OpenReader(opts.Base)
		if err != nil {
			return nil, fmt.Errorf("open base workbook: %w", err)
		}
		if err := dropDefaultSheet(f); err != nil {
			f.Close()
			return nil, err
		}
	} else {
		f = excelize.NewFile()
		placeholder = f.GetSheetName(0)
	}

	if placeholder != "" && len(set.Reports) > 0 {
		if err := f.SetSheetName(placeholder, set.Reports[0].Name); err != nil {
			f.Close()
			return nil, err
		}
	}

	st := newStyles(f)
	for i := range set.Reports {
		if err := writeReport(f, st, &set.Reports[i], opts.Base != nil); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", set.Reports[i].Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// dropDefaultSheet removes a leftover default "Sheet" from a base workbook
// that has other sheets.
func dropDefaultSheet(f *excelize.File) error {
	idx, err := f.GetSheetIndex(defaultBaseSheet)
	if err != nil || idx < 0 || len(f.GetSheetList()) < 2 {
		return err
	}
	return f.DeleteSheet(defaultBaseSheet)
}

// WriteXLSX renders set and writes the workbook to w.
func WriteXLSX(w io.Writer, set *models.ReportSet, opts WriteOptions) error {
	f, err := NewWorkbook(set, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// SaveXLSX renders set and saves the workbook at path.
func SaveXLSX(path string, set *models.ReportSet, opts WriteOptions) error {
	f, err := NewWorkbook(set, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// writeReport renders r on its own sheet. With replace set, an existing sheet
// of the same name is dropped first.
func writeReport(f *excelize.File, st *styles, r *models.Report, replace bool) error {
	idx, err := f.GetSheetIndex(r.Name)
	if err != nil {
		return err
	}
	if idx >= 0 && replace {
		if err := f.DeleteSheet(r.Name); err != nil {
			return err
		}
		idx = -1
	}
	if idx < 0 {
		if _, err := f.NewSheet(r.Name); err != nil {
			return err
		}
	}

	sw := &sheetWriter{f: f, st: st, sheet: r.Name, widths: make(map[int]int)}
	var area models.PrintArea
	switch {
	case r.Name == reports.RegionSummaryName:
		area, err = sw.regionSummary(r)
	case r.Kind == models.KindWatchList:
		area, err = sw.watchList(r)
	default:
		area, err = sw.grouped(r)
	}
	if err != nil {
		return err
	}
	if err := sw.fit(); err != nil {
		return err
	}
	return SetPrintArea(f, r.Name, area)
}

// sheetWriter writes styled cells and tracks the widest line per column.
type sheetWriter struct {
	f      *excelize.File
	st     *styles
	sheet  string
	widths map[int]int
}

func (w *sheetWriter) put(col, row int, v interface{}, cs cellStyle) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
		return err
	}
	id, err := w.st.id(cs)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(w.sheet, cell, cell, id); err != nil {
		return err
	}
	if n := displayWidth(v); n > w.widths[col] {
		w.widths[col] = n
	}
	return nil
}

// fit sets every written column to its longest line plus padding.
func (w *sheetWriter) fit() error {
	for col, n := range w.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		width := float64(n + widthPadding)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) regionSummary(r *models.Report) (models.PrintArea, error) {
	lastCol := regionFirstCol + len(r.Columns) - 1
	area := models.PrintArea{R1: regionHeaderRow, C1: regionFirstCol, R2: regionHeaderRow + len(r.Rows), C2: lastCol}

	if r.Title != "" {
		area.R1 = regionTitleRow
		if err := w.title(r.Title, regionFirstCol, lastCol, regionTitleRow); err != nil {
			return area, err
		}
	}

	for i, name := range r.Columns {
		cs := cellStyle{fill: headerPalette[i%len(headerPalette)], bold: true, wrap: true}
		if err := w.put(regionFirstCol+i, regionHeaderRow, name, cs); err != nil {
			return area, err
		}
	}

	for i, row := range r.Rows {
		for j, c := range row.Cells {
			cs := cellStyle{bold: true, wrap: true, integer: isNumber(c.Value)}
			switch {
			case row.Total:
				cs.fill = colorYellow
			case c.Zero:
				cs.fill = colorRed
			}
			if err := w.put(regionFirstCol+j, regionHeaderRow+1+i, c.Value, cs); err != nil {
				return area, err
			}
		}
	}
	return area, nil
}

// title writes the merged banner above the Region Summary header. The banner
// does not take part in column fitting.
func (w *sheetWriter) title(text string, firstCol, lastCol, row int) error {
	start, err := excelize.CoordinatesToCellName(firstCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(lastCol, row)
	if err != nil {
		return err
	}
	if err := w.f.MergeCell(w.sheet, start, end); err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, start, text); err != nil {
		return err
	}
	id, err := w.st.id(cellStyle{fill: colorTitle, bold: true, size: 14, wrap: true})
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, start, end, id)
}

func (w *sheetWriter) grouped(r *models.Report) (models.PrintArea, error) {
	area := models.PrintArea{R1: 1, C1: 1, R2: 1 + len(r.Rows), C2: len(r.Columns)}

	for i, name := range r.Columns {
		if err := w.put(1+i, 1, name, cellStyle{fill: colorYellow, bold: true, size: 12}); err != nil {
			return area, err
		}
	}
	for i, row := range r.Rows {
		cs := cellStyle{bold: true}
		if row.Total {
			cs.fill = colorYellow
		}
		for j, c := range row.Cells {
			if err := w.put(1+j, 2+i, c.Value, cs); err != nil {
				return area, err
			}
		}
	}
	return area, nil
}

func (w *sheetWriter) watchList(r *models.Report) (models.PrintArea, error) {
	area := models.PrintArea{R1: 1, C1: 1, R2: 1 + len(r.Rows), C2: len(r.Columns)}

	for i, name := range r.Columns {
		header := strings.Join(strings.Fields(name), "\n")
		if err := w.put(1+i, 1, header, cellStyle{fill: colorYellow, bold: true, size: 12, wrap: true}); err != nil {
			return area, err
		}
	}
	if err := w.f.SetRowHeight(w.sheet, 1, watchHeaderHeight); err != nil {
		return area, err
	}

	for i, row := range r.Rows {
		cs := cellStyle{bold: true, fontColor: colorRed, wrap: true}
		if row.Total {
			cs = cellStyle{bold: true, fill: colorYellow, wrap: true}
		}
		for j, c := range row.Cells {
			if err := w.put(1+j, 2+i, c.Value, cs); err != nil {
				return area, err
			}
		}
	}
	return area, nil
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

// displayWidth is the length of the longest line of v as rendered text.
func displayWidth(v interface{}) int {
	var s string
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}

	longest := 0
	for _, line := range strings.Split(s, "\n") {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return longest
}
