package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/reviewlens/internal/cli"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage keyword categories",
		Long:  `List, add, update, and delete the keyword categories used to classify reviews, or import a built-in preset.`,
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(updateCategoryCmd(a))
	cmd.AddCommand(deleteCategoryCmd(a))
	cmd.AddCommand(presetsCmd(a))
	cmd.AddCommand(importPresetCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			writeln(cmd, cli.RenderCategories(store.List()))
			return nil
		},
	}
}

func addCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [keywords]",
		Short: "Add a category",
		Long: `Add a category. Keywords are comma separated; matching ignores case.
Without keywords the category is created empty and matches nothing until
it is updated.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			var keywords string
			if len(args) > 1 {
				keywords = args[1]
			}

			if err := store.Add(cmd.Context(), args[0], keywords); err != nil {
				return err
			}
			writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Added category %q", args[0])))
			return nil
		},
	}
}

func updateCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <name> <keywords>",
		Short: "Replace the keywords of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := store.Update(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Updated category %q", args[0])))
			return nil
		},
	}
}

func deleteCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Deleted category %q", args[0])))
			return nil
		},
	}
}

func presetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in category presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			writeln(cmd, cli.RenderPresets(storage.Presets(), store.IsImported))
			return nil
		},
	}
}

func importPresetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [preset...]",
		Short: "Import built-in presets into the category store",
		Long: `Import one or more presets by name, or every preset with --all. An imported
preset overwrites a stored category of the same name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if all, _ := cmd.Flags().GetBool("all"); all {
				names = nil
				for _, p := range storage.Presets() {
					names = append(names, p.Name)
				}
			}
			if len(names) == 0 {
				return errors.New("name a preset or pass --all")
			}

			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			for _, name := range names {
				c, err := store.ImportPreset(cmd.Context(), name)
				if err != nil {
					return err
				}
				writeln(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %q (%d keywords)", c.Name, c.KeywordCount())))
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "import every preset")

	return cmd
}
