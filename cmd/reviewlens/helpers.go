package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/spf13/cobra"
)

// openStore opens the configured category backend. The caller closes the
// returned backend.
func (a *app) openStore(ctx context.Context) (*storage.CategoryStore, storage.Backend, error) {
	backend, err := storage.Open(ctx, a.cfg.Storage)
	if err != nil {
		return nil, nil, common.NewUserError(
			fmt.Sprintf("could not open the %s category store", a.cfg.Storage.Backend), err)
	}

	store, err := storage.NewCategoryStore(ctx, backend)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return store, backend, nil
}

// loadTable reads path and decodes it against required.
func loadTable(path string, required []string) (*table.Table, error) {
	raw, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return table.Decode(raw, required)
}

// defaultOutput derives an output path next to input with a suffix and a new
// extension.
func defaultOutput(input, suffix, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix + "." + ext
}

// addGroupFlags registers the grouping and trend flags shared by stats and charts.
func addGroupFlags(cmd *cobra.Command) {
	cmd.Flags().String("by", "Asin", "columns to group by, comma separated (Asin, Model, Title)")
	cmd.Flags().String("trend-by", "", "columns to group the trend by; empty for the overall series")
	cmd.Flags().StringSlice("asins", nil, "restrict the trend to these ASINs")
}

func groupFlags(cmd *cobra.Command) (analysis.GroupBy, analysis.TrendOptions, error) {
	var opts analysis.TrendOptions

	byFlag, _ := cmd.Flags().GetString("by")
	by, err := analysis.ParseGroupBy(byFlag)
	if err != nil {
		return nil, opts, err
	}

	if trendBy, _ := cmd.Flags().GetString("trend-by"); trendBy != "" {
		if opts.By, err = analysis.ParseGroupBy(trendBy); err != nil {
			return nil, opts, err
		}
	}
	opts.Asins, _ = cmd.Flags().GetStringSlice("asins")

	return by, opts, nil
}

func writef(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
