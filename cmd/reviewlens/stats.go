package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/reviewlens/internal/cli"
	"github.com/Veraticus/reviewlens/internal/report"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/spf13/cobra"
)

func statsCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show the statistics dashboard of a review table",
		Long: `Load a processed review table (xlsx or csv) and print the overview, the
review type summary, per-group rating statistics, the rating distribution and
the monthly rating trend. The table must carry every statistics column.
Sections that cannot be computed are reported with a simpler fallback where
one exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, trend, err := groupFlags(cmd)
			if err != nil {
				return err
			}

			t, err := loadTable(args[0], table.StatisticsColumns)
			if err != nil {
				return err
			}

			d := report.Build(t, report.Options{By: by, Trend: trend})

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}

			writeln(cmd, cli.RenderDashboard(d))
			if failed := d.Failed(); len(failed) > 0 {
				writeln(cmd, "")
				writeln(cmd, cli.FormatWarning(fmt.Sprintf("%d of 5 sections failed: %v", len(failed), failed)))
			}
			return nil
		},
	}

	addGroupFlags(cmd)
	cmd.Flags().Bool("json", false, "print the dashboard as JSON")

	return cmd
}
