// Package bcreport builds the Business Correspondent report set from an uploaded workbook.
package bcreport

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultSheetName is the sheet holding one row per Business Correspondent.
const DefaultSheetName = "DATA"

// Mode represents the report mode.
type Mode string

const (
	// ModeLight builds the grouped reports only (Region Summary and PERCENTAGE).
	ModeLight Mode = "light"
	// ModeStandard builds the grouped reports and the four watch lists.
	ModeStandard Mode = "standard"
	// ModeVerbose builds everything in standard mode and adds the KPI uptake
	// among inactive agents to the PERCENTAGE report.
	ModeVerbose Mode = "verbose"
)

// ParseMode parses a mode name. The empty string yields ModeStandard.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeStandard, nil
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected light, standard or verbose)", s)
	}
}

// Options configures report generation.
type Options struct {
	// Mode specifies the report mode (light, standard, verbose).
	Mode Mode
	// SheetName is the input sheet to read. Defaults to DATA.
	SheetName string
	// Title is the Region Summary banner.
	// If empty, defaults to the upper-cased upload file name.
	Title string
	// IncludeWatchLists specifies whether to build the watch lists.
	// If nil, defaults to false for light mode, true otherwise.
	IncludeWatchLists *bool
	// IncludeInactiveKPI specifies whether to add the <KPI>_NOT_ACTIVE_% columns.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeInactiveKPI *bool
	// Logger receives report failures. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns default report options.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeStandard,
		SheetName: DefaultSheetName,
	}
}

// ShouldIncludeWatchLists returns whether to build the watch lists.
func (o Options) ShouldIncludeWatchLists() bool {
	if o.IncludeWatchLists != nil {
		return *o.IncludeWatchLists
	}
	return o.Mode != ModeLight
}

// ShouldIncludeInactiveKPI returns whether to add the inactive KPI uptake columns.
func (o Options) ShouldIncludeInactiveKPI() bool {
	if o.IncludeInactiveKPI != nil {
		return *o.IncludeInactiveKPI
	}
	return o.Mode == ModeVerbose
}

func (o Options) sheetName() string {
	if o.SheetName == "" {
		return DefaultSheetName
	}
	return o.SheetName
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// TitleFor returns the Region Summary banner for an upload named filename.
func (o Options) TitleFor(filename string) string {
	if o.Title != "" {
		return o.Title
	}
	return strings.ToUpper(filename)
}
