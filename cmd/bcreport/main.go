// Package main provides the CLI entry point for bcreport.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/bcreport-go/internal/config"
	"github.com/ukaji3/bcreport-go/internal/logging"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bcreport",
		Short: "Generate Business Correspondent performance reports from Excel files",
		Long: `bcreport reads the DATA sheet of an agent performance workbook and builds
the Region Summary, PERCENTAGE and watch-list (Inactive, Below_50, Below_100, SSS)
reports as a styled Excel workbook or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newGenerateCmd(), newServeCmd(), newInspectCmd(), newRunsCmd())

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel)
}

func status(format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stderr, format+"\n", a...)
}

func warn(format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", a...)
}
