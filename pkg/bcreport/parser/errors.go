package parser

import "errors"

// ErrUnsupportedExtension indicates the upload is not an .xlsx or .xls file.
var ErrUnsupportedExtension = errors.New("unsupported file type")

// ErrInvalidFormat indicates the upload cannot be read as a workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptySheet indicates the sheet has no header row.
var ErrEmptySheet = errors.New("sheet is empty")
