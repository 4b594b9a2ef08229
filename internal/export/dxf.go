package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerSheets = "SHEETS"
	LayerCuts   = "CUTS"
	LayerLabels = "LABELS"
)

// dxfSheetGap separates sheets laid out side by side, in inches.
const dxfSheetGap = 12.0

// ExportDXF writes every sheet side by side into one drawing: sheet
// outlines on SHEETS, placed cuts on CUTS and cut labels on LABELS. DXF
// uses a bottom-left origin, so Y is flipped.
func ExportDXF(path string, result model.OptimizationResult) error {
	if len(result.Sheets) == 0 {
		return ErrNoSheets
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerSheets, dxf.DefaultColor},
		{LayerCuts, color.Green},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	offsetX := 0.0
	for i, sheet := range result.Sheets {
		stock := sheet.Stock
		if err := d.ChangeLayer(LayerSheets); err != nil {
			return err
		}
		if err := dxfRect(d, offsetX, 0, stock.Width, stock.Length); err != nil {
			return fmt.Errorf("sheet %d: %w", i+1, err)
		}

		for _, p := range sheet.Cuts {
			x := offsetX + p.X
			y := stock.Length - p.Y - p.PH

			if err := d.ChangeLayer(LayerCuts); err != nil {
				return err
			}
			if err := dxfRect(d, x, y, p.PW, p.PH); err != nil {
				return fmt.Errorf("sheet %d cut %q: %w", i+1, p.Label, err)
			}

			height := math.Min(math.Min(p.PW, p.PH)/6, 2)
			if err := d.ChangeLayer(LayerLabels); err != nil {
				return err
			}
			if _, err := d.Text(p.Label, x+p.PW/10, y+p.PH/2, 0, height); err != nil {
				return fmt.Errorf("sheet %d cut %q: %w", i+1, p.Label, err)
			}
		}

		offsetX += stock.Width + dxfSheetGap
	}

	return d.SaveAs(path)
}

func dxfRect(d *drawing.Drawing, x, y, w, h float64) error {
	_, err := d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
	return err
}
