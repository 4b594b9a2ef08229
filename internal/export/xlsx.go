package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	cutListSheet = "Cut List"
	summarySheet = "Summary"
)

// ExportExcel writes a workbook with a "Cut List" sheet, one row per cut,
// and a "Summary" sheet with per-sheet efficiency and overall stats.
func ExportExcel(path string, result model.OptimizationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), cutListSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	if err := writeRows(f, cutListSheet, cutListHeader, cutListRowValues(result)); err != nil {
		return err
	}

	stats := engine.CalculateStats(result)
	summary := make([][]interface{}, 0, len(result.Sheets)+6)
	for i, s := range result.Sheets {
		summary = append(summary, []interface{}{
			i + 1, s.Stock.Name, s.Stock.Length, s.Stock.Width, len(s.Cuts), roundTenth(s.Efficiency()),
		})
	}
	summary = append(summary,
		[]interface{}{},
		[]interface{}{"Sheets", stats.Sheets},
		[]interface{}{"Used sq in", roundTenth(stats.Used)},
		[]interface{}{"Total sq in", roundTenth(stats.Total)},
		[]interface{}{"Waste %", stats.Waste.InexactFloat64()},
		[]interface{}{"Unplaced", stats.Unplaced},
	)
	header := []string{"Sheet", "Stock", "Length", "Width", "Cuts", "Efficiency %"}
	if err := writeRows(f, summarySheet, header, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// cutListRowValues mirrors cutListRows with numeric cells kept numeric.
func cutListRowValues(result model.OptimizationResult) [][]interface{} {
	var rows [][]interface{}
	for i, sheet := range result.Sheets {
		for _, p := range sheet.Cuts {
			rows = append(rows, []interface{}{
				i + 1, sheet.Stock.Name, p.Label, p.Material, p.Length, p.Width, p.X, p.Y, p.PW, p.PH, p.Rotated,
			})
		}
	}
	for _, c := range result.Unplaced {
		rows = append(rows, []interface{}{"", "", c.Label, c.Material, c.Length, c.Width})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
