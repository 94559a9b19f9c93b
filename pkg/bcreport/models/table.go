package models

// Table is a raw sheet: the header row followed by data rows, as text.
type Table struct {
	// Sheet is the name of the sheet the table was read from.
	Sheet string `json:"sheet"`
	// Header holds the header cells in column order.
	Header []string `json:"header"`
	// Rows holds the data rows. Rows may be shorter than Header.
	Rows [][]string `json:"rows"`
}

// Dataset is the canonical, normalized form of the DATA sheet shared by all reports.
type Dataset struct {
	// Records holds one normalized record per non-empty data row, in sheet order.
	Records []Record `json:"records"`
	// Source lists the schema columns that were present in the sheet header.
	Source map[Column]bool `json:"source"`
	// Materialized lists the columns that exist after normalization even when
	// absent from the sheet (defaulted KPI and state columns).
	Materialized map[Column]bool `json:"materialized"`
}

// Has reports whether col can be read from the dataset, either because it was
// uploaded or because normalization defaulted it.
func (d *Dataset) Has(col Column) bool {
	return d.Source[col] || d.Materialized[col]
}

// InSource reports whether col was present in the uploaded sheet.
func (d *Dataset) InSource(col Column) bool {
	return d.Source[col]
}
