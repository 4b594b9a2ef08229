package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/config"
	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/importer"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/piwi3910/kerfcut/internal/project"
)

// inputFlags are shared by the commands that run the optimizer.
type inputFlags struct {
	projectPath string
	cutsPath    string
	stocksPath  string
	presets     []string
	algorithm   string
	kerf        float64
	timeLimit   time.Duration
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.projectPath, "project", "p", "", "Project file (.json or .yaml) with cuts, stocks and settings")
	cmd.Flags().StringVar(&f.cutsPath, "cuts", "", "Cut list to import (.csv, .tsv, .txt, .xlsx, .dxf)")
	cmd.Flags().StringVar(&f.stocksPath, "stocks", "", "Stock list to import (.csv, .tsv, .txt, .xlsx)")
	cmd.Flags().StringArrayVar(&f.presets, "preset", nil, "Inventory stock preset as NAME or NAME:QTY (repeatable)")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "Algorithm (guillotine, shelf, optimal, best)")
	cmd.Flags().Float64VarP(&f.kerf, "kerf", "k", 0, "Saw kerf in inches")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "Branch-and-bound search time limit (0 picks by cut count)")
}

// job is a fully resolved optimizer input.
type job struct {
	project  model.Project
	path     string // project file, empty when built from imports
	settings model.CutSettings
}

// loadJob assembles the input from a project file, imported lists and
// inventory presets. Settings come from the config, then the project, then
// explicitly set flags.
func loadJob(cmd *cobra.Command, f *inputFlags, cfg *config.Config, logger *slog.Logger) (job, error) {
	j := job{project: model.NewProject(), settings: cfg.CutSettings()}

	if f.projectPath != "" {
		p, err := project.Load(f.projectPath)
		if err != nil {
			return j, err
		}
		j.project, j.path = p, f.projectPath
		if p.Settings.Algorithm != "" {
			j.settings.Algorithm = p.Settings.Algorithm
		}
		if p.Settings.Kerf > 0 {
			j.settings.Kerf = p.Settings.Kerf
		}
		if p.Settings.SearchTimeLimit > 0 {
			j.settings.SearchTimeLimit = p.Settings.SearchTimeLimit
		}
		logger.Debug("project loaded", "path", f.projectPath, "cuts", len(p.Cuts), "stocks", len(p.Stocks))
	}

	if f.cutsPath != "" {
		cuts, err := runImport(f.cutsPath, importer.ImportCuts(f.cutsPath), logger)
		if err != nil {
			return j, err
		}
		j.project.Cuts = append(j.project.Cuts, cuts.Cuts...)
	}
	if f.stocksPath != "" {
		stocks, err := runImport(f.stocksPath, importer.ImportStocks(f.stocksPath), logger)
		if err != nil {
			return j, err
		}
		j.project.Stocks = append(j.project.Stocks, stocks.Stocks...)
	}
	if len(f.presets) > 0 {
		stocks, err := presetStocks(cfg.DataDir, f.presets)
		if err != nil {
			return j, err
		}
		j.project.Stocks = append(j.project.Stocks, stocks...)
	}

	if cmd.Flags().Changed("algorithm") {
		algo, err := engine.ParseAlgorithm(f.algorithm)
		if err != nil {
			return j, err
		}
		j.settings.Algorithm = algo
	}
	if cmd.Flags().Changed("kerf") {
		j.settings.Kerf = f.kerf
	}
	if cmd.Flags().Changed("time-limit") {
		j.settings.SearchTimeLimit = f.timeLimit
	}
	j.project.Settings = j.settings

	if len(j.project.Cuts) == 0 {
		return j, errors.New("no cuts given: use --project or --cuts")
	}
	if len(j.project.Stocks) == 0 {
		return j, errors.New("no stock given: use --project, --stocks or --preset")
	}
	if err := errors.Join(
		model.ValidateCuts(j.project.Cuts),
		model.ValidateStocks(j.project.Stocks),
		model.ValidateKerf(j.settings.Kerf),
	); err != nil {
		return j, err
	}
	return j, nil
}

// runImport logs warnings and turns import errors into a single error.
func runImport(path string, res importer.ImportResult, logger *slog.Logger) (importer.ImportResult, error) {
	for _, w := range res.Warnings {
		logger.Warn("import", "file", path, "warning", w)
	}
	if !res.OK() {
		return res, fmt.Errorf("import %s: %s", path, strings.Join(res.Errors, "; "))
	}
	logger.Info("imported", "file", path, "cuts", len(res.Cuts), "stocks", len(res.Stocks))
	return res, nil
}

// presetStocks resolves NAME[:QTY] specs against the saved inventory.
func presetStocks(dataDir string, specs []string) ([]model.Stock, error) {
	inv, _, err := project.LoadOrCreateInventory(dataDir)
	if err != nil {
		return nil, err
	}

	stocks := make([]model.Stock, 0, len(specs))
	for _, spec := range specs {
		name, qty := spec, 1
		if i := strings.LastIndex(spec, ":"); i >= 0 {
			n, err := strconv.Atoi(spec[i+1:])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid preset quantity in %q", spec)
			}
			name, qty = spec[:i], n
		}
		preset := inv.FindStockByName(name)
		if preset == nil {
			preset = inv.FindStockByID(name)
		}
		if preset == nil {
			return nil, fmt.Errorf("no inventory preset named %q", name)
		}
		stocks = append(stocks, preset.ToStock(qty))
	}
	return stocks, nil
}
