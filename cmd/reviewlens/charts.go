package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/reviewlens/internal/cli"
	"github.com/Veraticus/reviewlens/internal/report"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/spf13/cobra"
)

func chartsCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts <file>",
		Short: "Render the dashboard charts as HTML",
		Long: `Render the review type pie, the rating distribution heatmap and the monthly
trend as standalone HTML files, plus a combined dashboard page.`,
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

			dir, _ := cmd.Flags().GetString("out-dir")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			files := map[string]report.Renderer{"dashboard.html": report.Page(d)}
			if d.Summary.OK() {
				files["pie.html"] = report.PieChart(d.Summary.Value)
			}
			if d.Distribution.OK() {
				files["heatmap.html"] = report.HeatmapChart(d.Distribution.Value)
			}
			if d.Trend.OK() {
				files["trend.html"] = report.TrendChart(d.Trend.Value)
			}

			names := make([]string, 0, len(files))
			for name := range files {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				path := filepath.Join(dir, name)
				if err := report.RenderFile(path, files[name]); err != nil {
					return err
				}
				writeln(cmd, cli.FormatSuccess("Wrote "+path))
			}
			for _, name := range d.Failed() {
				writeln(cmd, cli.FormatWarning(name+" section failed; its chart was skipped"))
			}
			return nil
		},
	}

	addGroupFlags(cmd)
	cmd.Flags().String("out-dir", "charts", "directory for the HTML files")

	return cmd
}
