package models

// Kind is the shape of a report table.
type Kind string

const (
	// KindGrouped is a grouped table ending with a grand total row.
	KindGrouped Kind = "grouped"
	// KindWatchList is a filtered row list ending with a total count marker.
	KindWatchList Kind = "watch_list"
)

// Cell is one output value with its presentation flags.
type Cell struct {
	// Value is a string, int64 or float64.
	Value interface{} `json:"v"`
	// Zero marks a zero numeric cell inside a highlighted column region.
	Zero bool `json:"zero,omitempty"`
}

// Row is one output row.
type Row struct {
	Cells []Cell `json:"cells"`
	// Total marks the grand total row of a grouped report or the
	// "Total Count" marker row of a watch list.
	Total bool `json:"total,omitempty"`
}

// Report is a named output table handed to the presentation layer.
type Report struct {
	// Name is the sheet name of the report.
	Name string `json:"name"`
	// Kind is the table shape.
	Kind Kind `json:"kind"`
	// Title is an optional banner shown above the table.
	Title string `json:"title,omitempty"`
	// Columns holds the display headers.
	Columns []string `json:"columns"`
	// Rows holds data rows; the last row is the total row.
	Rows []Row `json:"rows"`
}

// DataRows returns the rows without the trailing total row.
func (r *Report) DataRows() []Row {
	if n := len(r.Rows); n > 0 && r.Rows[n-1].Total {
		return r.Rows[:n-1]
	}
	return r.Rows
}

// TotalRow returns the trailing total row, or nil if there is none.
func (r *Report) TotalRow() *Row {
	if n := len(r.Rows); n > 0 && r.Rows[n-1].Total {
		return &r.Rows[n-1]
	}
	return nil
}

// Column returns the index of the display column, or -1.
func (r *Report) Column(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ReportFailure records a report that was skipped because its computation failed.
type ReportFailure struct {
	Report string `json:"report"`
	Error  string `json:"error"`
}

// ReportSet is the ordered collection of reports produced from one upload.
type ReportSet struct {
	// Source is the upload file name (no path).
	Source string `json:"source"`
	// Records is the number of agent rows read from the source sheet.
	Records int `json:"records"`
	// Reports holds the successful reports in output order.
	Reports []Report `json:"reports"`
	// Failures holds the reports that were skipped.
	Failures []ReportFailure `json:"failures,omitempty"`
}

// Report returns the report named name, or nil.
func (s *ReportSet) Report(name string) *Report {
	for i := range s.Reports {
		if s.Reports[i].Name == name {
			return &s.Reports[i]
		}
	}
	return nil
}
