package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/piwi3910/kerfcut/internal/project"
)

func newOffcutsCommand() *cobra.Command {
	var addToInventory bool

	cmd := &cobra.Command{
		Use:   "offcuts PROJECT",
		Short: "List reusable remnants of a saved project result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := ConfigFromContext(cmd.Context())

			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			if p.Result == nil {
				return errors.New("project has no result: run optimize --save first")
			}

			offcuts := model.DetectAllOffcuts(*p.Result, p.Settings.Kerf)
			w := cmd.OutOrStdout()
			for _, o := range offcuts {
				fmt.Fprintf(w, "  sheet %d %-20s %s x %s at (%s, %s)\n", o.SheetIndex+1, o.SheetName,
					model.ToFraction(o.Length), model.ToFraction(o.Width), model.ToFraction(o.X), model.ToFraction(o.Y))
			}
			fmt.Fprintf(w, "%d offcuts, %.1f sq in\n", len(offcuts), model.TotalOffcutArea(offcuts))

			if addToInventory && len(offcuts) > 0 {
				inv, path, err := project.LoadOrCreateInventory(cfg.DataDir)
				if err != nil {
					return err
				}
				inv.AddOffcuts(offcuts)
				if err := project.SaveInventory(path, inv); err != nil {
					return err
				}
				logger.Info("offcuts added to inventory", "count", len(offcuts), "inventory", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&addToInventory, "add", false, "Add the offcuts to the stock inventory")
	return cmd
}
