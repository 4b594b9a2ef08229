package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/logging"
)

func newCompareCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare algorithms and kerf presets on the same input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := ConfigFromContext(cmd.Context())

			j, err := loadJob(cmd, &in, cfg, logger)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(j.settings)
			results, err := engine.CompareScenarios(cmd.Context(), scenarios, j.project.Stocks, j.project.Cuts,
				engine.WithTracer(logging.NewTracer(logger)))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-4s %-32s %6s %8s %8s\n", "Rank", "Scenario", "Sheets", "Unplaced", "Waste %")
			for i, r := range results {
				fmt.Fprintf(w, "%-4d %-32s %6d %8d %8s\n",
					i+1, r.Scenario.Name, r.Stats.Sheets, r.Stats.Unplaced, r.Stats.Waste.StringFixed(1))
			}
			return nil
		},
	}

	in.register(cmd)
	return cmd
}
