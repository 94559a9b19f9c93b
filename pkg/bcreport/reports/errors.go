package reports

import "errors"

// ErrMissingColumn indicates a column a report groups by is absent from the upload.
var ErrMissingColumn = errors.New("required column missing")
