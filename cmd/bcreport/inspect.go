package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/output"
)

var inspectJSON bool

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [report.xlsx]",
		Short: "List the sheets, row counts, data ranges and print areas of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().BoolVar(&inspectJSON, "json", false, "Write the summary as JSON")
	return cmd
}

func runInspect(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	sheets, err := output.Inspect(f)
	if err != nil {
		return err
	}

	if inspectJSON {
		jsonData, err := output.SummaryToJSON(sheets, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sheet", "Rows", "Data Range", "Print Areas"})
	for _, s := range sheets {
		areas := make([]string, 0, len(s.PrintAreas))
		for _, a := range s.PrintAreas {
			areas = append(areas, a.String())
		}
		table.Append([]string{s.SheetName, strconv.Itoa(s.Rows), s.DataRange, strings.Join(areas, ", ")})
	}
	table.Render()
	return nil
}
