package output

import (
	"github.com/xuri/excelize/v2"
)

// Fill colors.
const (
	colorYellow = "FFFF00"
	colorRed    = "FF0000"
	colorTitle  = "D9E1F2"
	colorBorder = "000000"
)

const defaultFontSize = 11

// headerPalette cycles across the Region Summary header cells.
var headerPalette = []string{
	"FFC000", "92D050", "00B0F0", "FF99CC", "BFBFBF", "F4B084",
	"A9D08E", "D9E1F2", "FCE4D6", "DDEBF7", "E2EFDA", "FFF2CC",
}

// cellStyle is the subset of excelize styling used by the report sheets.
type cellStyle struct {
	fill      string
	bold      bool
	size      float64
	fontColor string
	wrap      bool
	// integer applies the "0" number format.
	integer bool
}

// styles creates excelize styles on demand and reuses identical ones.
type styles struct {
	f     *excelize.File
	cache map[cellStyle]int
}

func newStyles(f *excelize.File) *styles {
	return &styles{f: f, cache: make(map[cellStyle]int)}
}

func (s *styles) id(cs cellStyle) (int, error) {
	if id, ok := s.cache[cs]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: colorBorder, Style: 1},
			{Type: "right", Color: colorBorder, Style: 1},
			{Type: "top", Color: colorBorder, Style: 1},
			{Type: "bottom", Color: colorBorder, Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   cs.wrap,
		},
		Font: &excelize.Font{
			Bold:  cs.bold,
			Size:  defaultFontSize,
			Color: cs.fontColor,
		},
	}
	if cs.size > 0 {
		style.Font.Size = cs.size
	}
	if cs.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cs.fill}}
	}
	if cs.integer {
		style.NumFmt = 1
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.cache[cs] = id
	return id, nil
}
