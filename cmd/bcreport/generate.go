package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ukaji3/bcreport-go/internal/store"
	"github.com/ukaji3/bcreport-go/pkg/bcreport"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/output"
	"go.uber.org/zap"
)

var (
	outputPath string
	asJSON     bool
	pretty     bool
	mode       string
	sheetName  string
	title      string
	keepSource bool
	reportsDir string
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input.xlsx|input.xls]",
		Short: "Build the report workbook from an agent performance file",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: Complete_Bank_Report_YYYYMMDD.xlsx, or stdout with --json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the report set as JSON instead of a workbook")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&mode, "mode", "", "Report mode: light, standard, verbose (default from config)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Input sheet name (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "Region Summary title (default: upper-cased input file name)")
	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Keep the input .xlsx sheets ahead of the report sheets")
	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", "Directory for per-report JSON files")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mode") {
		cfg.Report.Mode = mode
	}
	if sheetName != "" {
		cfg.Report.SheetName = sheetName
	}
	if title != "" {
		cfg.Report.Title = title
	}
	if !cmd.Flags().Changed("keep-source") {
		keepSource = cfg.Report.KeepSource
	}

	reportMode, err := bcreport.ParseMode(cfg.Report.Mode)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := bcreport.DefaultOptions()
	opts.Mode = reportMode
	opts.SheetName = cfg.Report.SheetName
	opts.Title = cfg.Report.Title
	opts.Logger = log

	start := time.Now()
	set, err := bcreport.Generate(inputPath, opts)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	if cfg.Store.Driver != "" {
		st, err := store.Open(cmd.Context(), cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		run, err := st.RecordRun(cmd.Context(), store.Run{
			Source:   set.Source,
			Mode:     string(opts.Mode),
			Records:  set.Records,
			Reports:  len(set.Reports),
			Duration: time.Since(start),
			Failures: set.Failures,
		})
		if err != nil {
			log.Warn("record run", zap.Error(err))
		} else {
			log.Debug("run recorded", zap.String("run_id", run.ID))
		}
	}

	if asJSON {
		jsonData, err := output.ToJSON(set, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if outputPath == "" {
			fmt.Println(string(jsonData))
		} else if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		path := outputPath
		if path == "" {
			path = output.Filename(time.Now())
		}
		if err := writeWorkbook(path, inputPath, set); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		status("Wrote %s", path)
	}

	// Write per-report files
	if reportsDir != "" {
		if err := writeReportFiles(set, reportsDir); err != nil {
			return fmt.Errorf("failed to write report files: %w", err)
		}
		status("Wrote %d report files to %s", len(set.Reports), reportsDir)
	}

	printSummary(set)
	return nil
}

func writeWorkbook(path, inputPath string, set *models.ReportSet) error {
	var wopts output.WriteOptions
	if keepSource && strings.EqualFold(filepath.Ext(inputPath), ".xlsx") {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		wopts.Base = f
	}
	return output.SaveXLSX(path, set, wopts)
}

func writeReportFiles(set *models.ReportSet, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range set.Reports {
		r := &set.Reports[i]
		jsonData, err := output.ReportToJSON(r, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, reportFileName(r.Name)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// reportFileName turns a sheet name into a file name ("Region Summary" -> "region_summary").
func reportFileName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

func printSummary(set *models.ReportSet) {
	table := tablewriter.NewWriter(os.Stderr)
	table.SetHeader([]string{"Report", "Kind", "Rows"})
	for _, r := range set.Reports {
		table.Append([]string{r.Name, string(r.Kind), strconv.Itoa(len(r.DataRows()))})
	}
	table.Render()

	for _, f := range set.Failures {
		warn("Skipped %s: %s", f.Report, f.Error)
	}
}
