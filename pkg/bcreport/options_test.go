package bcreport

import "testing"

func TestOptionsDefaults(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name        string
		opts        Options
		watchLists  bool
		inactiveKPI bool
	}{
		{"light", Options{Mode: ModeLight}, false, false},
		{"standard", Options{Mode: ModeStandard}, true, false},
		{"verbose", Options{Mode: ModeVerbose}, true, true},
		{"light with lists", Options{Mode: ModeLight, IncludeWatchLists: &yes}, true, false},
		{"verbose without inactive", Options{Mode: ModeVerbose, IncludeInactiveKPI: &no}, true, false},
		{"standard with inactive", Options{Mode: ModeStandard, IncludeInactiveKPI: &yes}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.ShouldIncludeWatchLists(); got != tt.watchLists {
				t.Errorf("ShouldIncludeWatchLists() = %v, want %v", got, tt.watchLists)
			}
			if got := tt.opts.ShouldIncludeInactiveKPI(); got != tt.inactiveKPI {
				t.Errorf("ShouldIncludeInactiveKPI() = %v, want %v", got, tt.inactiveKPI)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeStandard, false},
		{"light", ModeLight, false},
		{" Verbose ", ModeVerbose, false},
		{"full", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTitleFor(t *testing.T) {
	if got := (Options{}).TitleFor("june_report.xlsx"); got != "JUNE_REPORT.XLSX" {
		t.Errorf("Expected upper-cased file name, got %q", got)
	}
	if got := (Options{Title: "Custom"}).TitleFor("june_report.xlsx"); got != "Custom" {
		t.Errorf("Expected explicit title, got %q", got)
	}
}
