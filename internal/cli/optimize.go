package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/export"
	"github.com/piwi3910/kerfcut/internal/logging"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/piwi3910/kerfcut/internal/project"
)

// defaultBackupKeep is how many project backups `optimize --save` retains.
const defaultBackupKeep = 10

func newOptimizeCommand() *cobra.Command {
	var (
		in         inputFlags
		outputs    []string
		labelsPath string
		save       bool
		keep       int
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Lay out a cut list on stock sheets",
		Long: "Run the optimizer on a project or imported lists, print a summary and write the layout " +
			"to each --out file. The format follows the extension: .pdf, .csv, .svg, .dxf, .xlsx or .html (utilization chart).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := ConfigFromContext(cmd.Context())

			j, err := loadJob(cmd, &in, cfg, logger)
			if err != nil {
				return err
			}

			opt := engine.New(j.settings, engine.WithTracer(logging.NewTracer(logger)))
			result, err := opt.Optimize(cmd.Context(), j.project.Stocks, j.project.Cuts)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), result, j.settings.Kerf)

			for _, out := range outputs {
				if err := writeOutput(out, result, j.settings.Kerf); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				logger.Info("wrote layout", "file", out)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, result); err != nil {
					return fmt.Errorf("write labels %s: %w", labelsPath, err)
				}
				logger.Info("wrote labels", "file", labelsPath)
			}

			if save {
				if j.path == "" {
					return fmt.Errorf("--save needs --project")
				}
				backup, err := project.BackupProject(j.path, keep)
				if err != nil {
					return err
				}
				logger.Debug("project backed up", "backup", backup)

				j.project.Result = &result
				if err := project.Save(j.path, j.project); err != nil {
					return err
				}
				logger.Info("project saved", "path", j.path)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringArrayVarP(&outputs, "out", "o", nil, "Output file; format by extension (repeatable)")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "Write a PDF of QR-coded part labels")
	cmd.Flags().BoolVar(&save, "save", false, "Store the result in the project file after backing it up")
	cmd.Flags().IntVar(&keep, "keep-backups", defaultBackupKeep, "Number of project backups to keep (0 keeps all)")

	return cmd
}

// writeOutput exports result in the format implied by path's extension.
// SVG writes one file per sheet, numbered from 1 when there are several.
func writeOutput(path string, result model.OptimizationResult, kerf float64) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return export.ExportPDF(path, result, kerf)
	case ".xlsx":
		return export.ExportExcel(path, result)
	case ".dxf":
		return export.ExportDXF(path, result)
	case ".csv":
		return writeFile(path, func(w io.Writer) error { return export.ExportCSV(w, result) })
	case ".html":
		return writeFile(path, func(w io.Writer) error { return export.ExportChart(w, result) })
	case ".svg":
		if len(result.Sheets) == 0 {
			return export.ErrNoSheets
		}
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for i, sheet := range result.Sheets {
			target := path
			if len(result.Sheets) > 1 {
				target = fmt.Sprintf("%s-%d%s", base, i+1, ext)
			}
			if err := writeFile(target, func(w io.Writer) error { return export.ExportSVG(w, sheet) }); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, result model.OptimizationResult, kerf float64) {
	stats := engine.CalculateStats(result)
	fmt.Fprintf(w, "Algorithm: %s   Kerf: %s\"\n", result.Algorithm, model.ToFraction(kerf))
	fmt.Fprintf(w, "Sheets: %d   Placed: %d   Unplaced: %d   Waste: %s%%\n",
		stats.Sheets, result.PlacedCount(), stats.Unplaced, stats.Waste.StringFixed(1))

	for i, s := range result.Sheets {
		fmt.Fprintf(w, "  %2d  %-24s %s x %s  %3d cuts  %5.1f%%\n",
			i+1, s.Stock.Name, model.ToFraction(s.Stock.Length), model.ToFraction(s.Stock.Width), len(s.Cuts), s.Efficiency())
	}
	for _, c := range result.Unplaced {
		fmt.Fprintf(w, "  unplaced: %s %s x %s\n", c.Label, model.ToFraction(c.Length), model.ToFraction(c.Width))
	}
}
