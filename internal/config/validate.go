package config

import (
	"fmt"
	"strings"
)

// Validate checks runtime configuration constraints.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	mode := strings.ToLower(strings.TrimSpace(c.Report.Mode))
	if mode != "" && mode != "light" && mode != "standard" && mode != "verbose" {
		return fmt.Errorf("report.mode must be 'light', 'standard' or 'verbose', got %q", c.Report.Mode)
	}
	if strings.TrimSpace(c.Report.SheetName) == "" {
		return fmt.Errorf("report.sheet_name must not be empty")
	}

	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be > 0, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("server.read_header_timeout must be >= 0, got %v", c.Server.ReadHeaderTimeout)
	}

	switch c.Store.Driver {
	case "":
	case "sqlite3", "pgx":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required when store.driver is %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be 'sqlite3' or 'pgx', got %q", c.Store.Driver)
	}

	return nil
}
