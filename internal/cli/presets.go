package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/importer"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/piwi3910/kerfcut/internal/project"
)

func newPresetsCommand() *cobra.Command {
	return newGroupCommand("presets", "Manage the stock inventory",
		newPresetsListCommand(),
		newPresetsAddCommand(),
		newPresetsImportCommand(),
	)
}

// newGroupCommand builds a cobra.Command that groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	if len(subcommands) > 0 {
		cmd.AddCommand(subcommands...)
	}
	return cmd
}

func newPresetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory stock presets, kerf presets and materials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			inv, path, err := project.LoadOrCreateInventory(cfg.DataDir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Inventory (%s)\n", path)
			for _, s := range inv.Stocks {
				fmt.Fprintf(w, "  %-8s %-24s %s x %s  %s\n",
					s.ID, s.Name, model.ToFraction(s.Length), model.ToFraction(s.Width), s.Material)
			}
			fmt.Fprintln(w, "Kerf presets")
			for _, k := range model.KerfPresets {
				fmt.Fprintf(w, "  %s\n", k.Label)
			}
			fmt.Fprintf(w, "Materials: %s\n", strings.Join(model.Materials, ", "))
			return nil
		},
	}
}

func newPresetsAddCommand() *cobra.Command {
	var material string

	cmd := &cobra.Command{
		Use:   "add NAME LENGTH WIDTH",
		Short: "Add a stock preset; sizes accept fractions such as 48 1/2",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := ConfigFromContext(cmd.Context())

			length, err := model.ParseFraction(args[1])
			if err != nil {
				return fmt.Errorf("invalid length: %w", err)
			}
			width, err := model.ParseFraction(args[2])
			if err != nil {
				return fmt.Errorf("invalid width: %w", err)
			}
			preset := model.NewStockPreset(args[0], length, width, material)
			if err := model.ValidateStocks([]model.Stock{preset.ToStock(1)}); err != nil {
				return err
			}

			inv, path, err := project.LoadOrCreateInventory(cfg.DataDir)
			if err != nil {
				return err
			}
			inv.Stocks = append(inv.Stocks, preset)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			logger.Info("preset added", "id", preset.ID, "name", preset.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&material, "material", "m", "", "Material tag")
	return cmd
}

func newPresetsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add the stocks of a CSV or Excel stock list to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := ConfigFromContext(cmd.Context())

			res, err := runImport(args[0], importer.ImportStocks(args[0]), logger)
			if err != nil {
				return err
			}

			var imported model.Inventory
			for _, s := range res.Stocks {
				imported.Stocks = append(imported.Stocks, model.NewStockPreset(s.Name, s.Length, s.Width, s.Material))
			}

			inv, path, err := project.LoadOrCreateInventory(cfg.DataDir)
			if err != nil {
				return err
			}
			inv = project.MergeInventory(inv, imported)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			logger.Info("presets imported", "count", len(imported.Stocks), "inventory", path)
			return nil
		},
	}
}
