package main

import (
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/Veraticus/reviewlens/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse classified reviews interactively",
		Long:  `Classify a review table with the stored categories and open it in a terminal browser. Tab cycles the category filter.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			t, err := loadTable(args[0], table.ClassificationColumns)
			if err != nil {
				return err
			}
			result, err := classification.Classify(t, store.List())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), result)
		},
	}
}
