package bcreport

import (
	"errors"
	"fmt"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/parser"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/reports"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Request-fatal input errors, surfaced before any report is computed.
var (
	ErrInvalidFormat        = parser.ErrInvalidFormat
	ErrUnsupportedExtension = parser.ErrUnsupportedExtension
	ErrSheetNotFound        = parser.ErrSheetNotFound
	ErrEmptySheet           = parser.ErrEmptySheet
)

// ErrMissingColumn indicates a report's grouping column is absent from the sheet.
var ErrMissingColumn = reports.ErrMissingColumn

// ReportError represents a failure while computing one report.
type ReportError struct {
	Report    string
	Component string // "region", "percentage", "watch_list"
	Err       error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report error in %q (%s): %v", e.Report, e.Component, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError.
func NewReportError(report, component string, err error) *ReportError {
	return &ReportError{
		Report:    report,
		Component: component,
		Err:       err,
	}
}

// IsInputError reports whether err means the upload itself is unusable
// (bad extension, unreadable workbook, missing or empty sheet).
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedExtension) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSheetNotFound) ||
		errors.Is(err, ErrEmptySheet)
}
