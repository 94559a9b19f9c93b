package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ukaji3/bcreport-go/internal/store"
)

var runsLimit int

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent report runs from the run history store",
		Args:  cobra.NoArgs,
		RunE:  runRuns,
	}
	cmd.Flags().IntVar(&runsLimit, "limit", 20, "Number of runs to show")
	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Driver == "" {
		return errors.New("run history is not configured (set store.driver and store.dsn)")
	}

	st, err := store.Open(cmd.Context(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		warn("No runs recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run", "Created", "Source", "Mode", "Records", "Reports", "Failures", "Duration"})
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			r.Mode,
			strconv.Itoa(r.Records),
			strconv.Itoa(r.Reports),
			strconv.Itoa(len(r.Failures)),
			r.Duration.String(),
		})
	}
	table.Render()
	return nil
}
