package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/xuri/excelize/v2"
)

// SupportedExtension reports whether filename has an accepted workbook extension.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadSheet reads the named sheet of an uploaded workbook. The format is chosen
// by the file extension of filename.
func ReadSheet(data []byte, filename, sheetName string) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ReadXLSX(bytes.NewReader(data), sheetName)
	case ".xls":
		return ReadXLS(bytes.NewReader(data), sheetName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Base(filename))
	}
}

// ReadXLSX reads the named sheet of an .xlsx workbook.
// Cells are read as raw values so number formats do not leak into the data.
func ReadXLSX(r io.Reader, sheetName string) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	if !hasSheet(f.GetSheetList(), sheetName) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	return tableFromRows(sheetName, rows)
}

func hasSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
