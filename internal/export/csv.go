package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/piwi3910/kerfcut/internal/model"
)

var cutListHeader = []string{"Sheet", "Sheet Stock", "Label", "Material", "Length", "Width", "X", "Y", "Placed Width", "Placed Height", "Rotated"}

// cutListRows flattens a result into one row per placed cut followed by
// one row per unplaced cut with an empty sheet column.
func cutListRows(result model.OptimizationResult) [][]string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	var rows [][]string
	for i, sheet := range result.Sheets {
		for _, p := range sheet.Cuts {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				sheet.Stock.Name,
				p.Label,
				p.Material,
				num(p.Length),
				num(p.Width),
				num(p.X),
				num(p.Y),
				num(p.PW),
				num(p.PH),
				strconv.FormatBool(p.Rotated),
			})
		}
	}
	for _, c := range result.Unplaced {
		rows = append(rows, []string{"", "", c.Label, c.Material, num(c.Length), num(c.Width), "", "", "", "", ""})
	}
	return rows
}

// ExportCSV writes the cut list as comma-separated values with a header row.
func ExportCSV(w io.Writer, result model.OptimizationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cutListHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(cutListRows(result)); err != nil {
		return err
	}
	return cw.Error()
}
