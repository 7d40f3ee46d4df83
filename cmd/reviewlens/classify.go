package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/cli"
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func classifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Tag reviews with the stored keyword categories",
		Long: `Match every review's content against the keywords of each stored category
and write a table with one "Is <category>" column per category. A review can
belong to several categories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, backend, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			categories := store.List()
			if len(categories) == 0 {
				writeln(cmd, cli.FormatWarning("No categories defined. Use 'reviewlens categories add' or 'categories import' first."))
				return nil
			}

			t, err := loadTable(args[0], table.ClassificationColumns)
			if err != nil {
				return err
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := interrupts.HandleInterrupts(ctx, "Classification")
			defer stop()

			classifier := classification.NewClassifier(categories)
			for _, name := range classifier.Unmatchable() {
				writeln(cmd, cli.FormatWarning(fmt.Sprintf("Category %q has no keywords and will match nothing", name)))
			}

			bar := newProgressBar(cmd, t.Len())
			result, err := classifier.Classify(t,
				classification.WithProgress(func(_, _ int) {
					if err := bar.Add(1); err != nil {
						slog.Warn("Failed to update progress bar", "error", err)
					}
				}))
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			writeln(cmd, cli.RenderClassification(result.Stats, len(result.Rows)))

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = defaultOutput(args[0], "_classified", string(table.FormatXLSX))
			}

			sheet := result.Sheet()
			if category, _ := cmd.Flags().GetString("category"); category != "" {
				rows, err := result.Filter(category)
				if err != nil {
					return err
				}
				sheet = (&classification.Result{Categories: result.Categories, Rows: rows}).Sheet()
			}

			if err := table.WriteFile(output, sheet); err != nil {
				return err
			}
			common.LogInfo("classified table written", common.Fields{"path": output, "rows": len(sheet.Rows)})
			writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Wrote %d rows to %s", len(sheet.Rows), output)))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (.xlsx, .csv or .txt; default <input>_classified.xlsx)")
	cmd.Flags().String("category", "", "only write the reviews matching this category")

	return cmd
}

func newProgressBar(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	w := cmd.ErrOrStderr()
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying reviews...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
