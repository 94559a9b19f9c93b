// Package config loads runtime settings for the bcreport CLI and server.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string `yaml:"log_level"`

	Report ReportConfig `yaml:"report"`
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
}

type ReportConfig struct {
	SheetName string `yaml:"sheet_name"`
	Mode      string `yaml:"mode"`
	Title     string `yaml:"title"`
	// KeepSource keeps the uploaded .xlsx sheets ahead of the report sheets.
	KeepSource bool `yaml:"keep_source"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	MaxUploadMB       int64         `yaml:"max_upload_mb"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// StoreConfig selects the run diagnostics database. An empty driver disables it.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Report: ReportConfig{
			SheetName:  "DATA",
			Mode:       "standard",
			KeepSource: true,
		},
		Server: ServerConfig{
			Addr:              ":8000",
			MaxUploadMB:       32,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads an optional .env file, then the YAML file at path (if any),
// then applies environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("BCREPORT_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("BCREPORT_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("BCREPORT_MAX_UPLOAD_MB")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Server.MaxUploadMB = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BCREPORT_SHEET")); v != "" {
		c.Report.SheetName = v
	}
	if v := strings.TrimSpace(os.Getenv("BCREPORT_MODE")); v != "" {
		c.Report.Mode = v
	}
	if v := os.Getenv("BCREPORT_KEEP_SOURCE"); v != "" {
		c.Report.KeepSource = strings.EqualFold(v, "true") || v == "1"
	}
	if v := strings.TrimSpace(os.Getenv("BCREPORT_STORE_DRIVER")); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("BCREPORT_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
}

// MaxUploadBytes is the request body limit for uploads.
func (c Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}
