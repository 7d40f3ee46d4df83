package main

import (
	"fmt"

	"github.com/Veraticus/reviewlens/internal/cli"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/spf13/cobra"
)

func preprocessCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preprocess <file>",
		Short: "Clean a raw review export into a processed table",
		Long: `Read a raw review export with Asin, Title, Content, Model, Rating and Date
columns, trim the text, coerce ratings and dates, number the rows and derive
each review type from its rating.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := table.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := table.Preprocess(raw)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = defaultOutput(args[0], "_processed", string(table.FormatXLSX))
			}
			if err := table.WriteFile(output, t.Sheet()); err != nil {
				return err
			}

			writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Wrote %d reviews to %s", t.Len(), output)))
			if d := t.Diagnostics; d.BadRatings+d.BadDates > 0 {
				writeln(cmd, cli.FormatWarning(fmt.Sprintf("%d ratings and %d dates could not be read", d.BadRatings, d.BadDates)))
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (.xlsx, .csv or .txt; default <input>_processed.xlsx)")

	return cmd
}
